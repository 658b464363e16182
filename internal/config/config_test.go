package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 5000}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidQuotaAction(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.Action = "invalid_action"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid quota action")
	}

	expected := `quota.action must be "warn" or "reject", got "invalid_action"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidQuotaActions(t *testing.T) {
	for _, action := range []string{"", "warn", "reject"} {
		t.Run("action="+action, func(t *testing.T) {
			cfg := validConfig()
			cfg.Quota.Action = action
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid action %q: %v", action, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{-1, 65536} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_NegativeLimits(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.DailyLimit = -5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestValidate_ScopeWithSeparator(t *testing.T) {
	cfg := validConfig()
	cfg.Quota.Scope = "a:b"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for scope containing ':'")
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = -1
	cfg.Quota.Action = "drop"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"http.port", "quota.action"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidate_DatabaseOptional(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config without database must be valid: %v", err)
	}
	if cfg.Database.Enabled() {
		t.Error("database must be disabled without addrs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 5000 {
		t.Errorf("expected Port=5000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected AllowedOrigins=[*], got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Quota.Action != "warn" {
		t.Errorf("expected Action=warn, got %q", cfg.Quota.Action)
	}
	if cfg.Quota.Scope != "match" {
		t.Errorf("expected Scope=match, got %q", cfg.Quota.Scope)
	}
	if cfg.Quota.Enabled() {
		t.Error("quota must be disabled by default")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "valkey", ReadinessTimeout: 15},
		CORS:     CORSConfig{AllowedOrigins: []string{"https://app.example.com"}},
		Quota:    QuotaConfig{Action: "reject", Scope: "public"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.CORS.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("unexpected AllowedOrigins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Quota.Action != "reject" || cfg.Quota.Scope != "public" {
		t.Errorf("quota overridden: %+v", cfg.Quota)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("LOSTMATCH_TEST_PORT", "6000")
	t.Setenv("LOSTMATCH_TEST_KEY", "secret")

	cfg, err := Parse([]byte(`
http:
  port: ${LOSTMATCH_TEST_PORT}
auth:
  api_keys: ["${LOSTMATCH_TEST_KEY}"]
quota:
  daily_limit: ${LOSTMATCH_TEST_UNSET:-25}
  action: reject
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 6000 {
		t.Errorf("port = %d, want 6000", cfg.HTTP.Port)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "secret" {
		t.Errorf("api_keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Quota.DailyLimit != 25 || !cfg.Quota.Enabled() {
		t.Errorf("daily_limit = %d, want 25", cfg.Quota.DailyLimit)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("quota:\n  action: drop\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Database.Enabled() {
		t.Error("local config must not require a database")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LOSTMATCH_DOTENV_VAR=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOSTMATCH_DOTENV_VAR", "")
	_ = os.Unsetenv("LOSTMATCH_DOTENV_VAR")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("LOSTMATCH_DOTENV_VAR"); got != "from-file" {
		t.Errorf("LOSTMATCH_DOTENV_VAR = %q, want from-file", got)
	}
}

func TestLoadDotEnv_NoFiles(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing files must be skipped: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lostmatch/internal/config"
	"github.com/kailas-cloud/lostmatch/internal/db"
	dbRedis "github.com/kailas-cloud/lostmatch/internal/db/redis"
	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
	logpkg "github.com/kailas-cloud/lostmatch/internal/logger"
	"github.com/kailas-cloud/lostmatch/internal/metrics"
	quotarepo "github.com/kailas-cloud/lostmatch/internal/repository/quota"
	chiTransport "github.com/kailas-cloud/lostmatch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/lostmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/lostmatch/internal/usecase/match"
	quotauc "github.com/kailas-cloud/lostmatch/internal/usecase/quota"
	usageuc "github.com/kailas-cloud/lostmatch/internal/usecase/usage"
	"github.com/kailas-cloud/lostmatch/internal/version"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err.Error())
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lostmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("db_enabled", cfg.Database.Enabled()),
		zap.Int64("quota_daily", cfg.Quota.DailyLimit),
		zap.Int64("quota_monthly", cfg.Quota.MonthlyLimit),
	)

	ctx := context.Background()

	// Counter store is optional: without it quota counters live in memory.
	var store db.Store
	if cfg.Database.Enabled() {
		store, err = openStore(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		defer store.Close()
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)
	}

	metrics.RegisterMatchMetrics()

	var tracker *quotauc.Tracker
	if cfg.Quota.Enabled() {
		tracker = quotauc.NewTracker(
			cfg.Quota.Scope,
			cfg.Quota.DailyLimit,
			cfg.Quota.MonthlyLimit,
			quotauc.ParseAction(cfg.Quota.Action),
			logger,
		)
		if store != nil {
			tracker.WithStore(ctx, quotarepo.New(store, 48*time.Hour, 62*24*time.Hour))
		}
	}

	// Pass nil interfaces, not typed nil pointers, when the quota is off.
	var checker matchuc.QuotaChecker
	var reader usageuc.QuotaReader
	if tracker != nil {
		checker = tracker
		reader = tracker
	}

	matchSvc := matchuc.New(similarity.Default(), checker)
	usageSvc := usageuc.New(reader)

	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(matchSvc, pinger)

	server := chiTransport.NewServer(matchSvc, usageSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects to Redis or Valkey; both speak RESP and share the rueidis client.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

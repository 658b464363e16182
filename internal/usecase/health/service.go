package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the scoring engine itself is broken.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckEngine   = "engine"
	CheckDatabase = "database"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine EngineChecker
	db     DBPinger
}

// New creates a Service. db is nil when no database is configured.
func New(engine EngineChecker, db DBPinger) *Service {
	return &Service{engine: engine, db: db}
}

// Check runs health checks against all components.
// A failing engine makes the service unhealthy; a failing database only
// degrades it, since quota counters fall back to memory.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.engine != nil {
		if err := s.engine.HealthCheck(ctx); err != nil {
			checks[CheckEngine] = CheckError
			status = Unhealthy
		} else {
			checks[CheckEngine] = CheckOK
		}
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks[CheckDatabase] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[CheckDatabase] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}

package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lostmatch/internal/domain"
	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
	domusage "github.com/kailas-cloud/lostmatch/internal/domain/usage"
	logpkg "github.com/kailas-cloud/lostmatch/internal/logger"
	gen "github.com/kailas-cloud/lostmatch/internal/transport/generated"
	healthuc "github.com/kailas-cloud/lostmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/lostmatch/internal/usecase/match"
	usageuc "github.com/kailas-cloud/lostmatch/internal/usecase/usage"
)

// RootMessage is the static liveness string served on GET /.
const RootMessage = "Lost & Found AI Backend Running (TF-IDF)"

// MissingFieldMessage is returned when either description is blank.
const MissingFieldMessage = "Both lost and found texts are required"

// maxBodyBytes bounds a /match body: two descriptions plus JSON framing.
const maxBodyBytes = 2*domain.MaxDescriptionBytes + 1024

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	match         *matchuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	match *matchuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		match:  match,
		usage:  usage,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, gen.ErrorResponseCodeMissingField),
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusTooManyRequests, gen.ErrorResponseCodeQuotaExceeded),
	}
	return s
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, RootMessage)
}

// Match handles POST /match. The body is parsed as JSON whatever the Content-Type.
func (s *Server) Match(w http.ResponseWriter, r *http.Request, params gen.MatchParams) {
	var req gen.MatchRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lost := strings.TrimSpace(deref(req.Lost))
	found := strings.TrimSpace(deref(req.Found))
	if lost == "" || found == "" {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeMissingField, MissingFieldMessage)
		return
	}
	if len(lost) > domain.MaxDescriptionBytes || len(found) > domain.MaxDescriptionBytes {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest,
			fmt.Sprintf("descriptions must not exceed %d bytes", domain.MaxDescriptionBytes))
		return
	}

	explain := params.Explain != nil && *params.Explain
	ctx := logpkg.WithFields(r.Context(), zap.Bool("explain", explain))

	res, err := s.match.Match(ctx, lost, found)
	if err != nil {
		s.handleDomainError(w, r.WithContext(ctx), err)
		return
	}

	resp := matchResultToGen(res)
	if explain {
		terms := res.CommonTerms()
		if terms == nil {
			terms = []string{}
		}
		resp.CommonTerms = &terms
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params gen.GetUsageParams) {
	period := domusage.PeriodMonth
	if params.Period != nil {
		period = domusage.ParsePeriod(string(*params.Period))
	}

	report := s.usage.GetReport(r.Context(), period)

	isExhausted := report.Quota().IsExhausted()
	resp := gen.UsageResponse{
		Period: gen.UsageResponsePeriod(report.Period()),
		Usage: gen.UsageMetrics{
			Requests: report.Metrics().Requests(),
			Rejected: report.Metrics().Rejected(),
		},
		Quota: gen.QuotaStatus{
			RequestsLimit:     report.Quota().Limit(),
			RequestsRemaining: report.Quota().Remaining(),
			IsExhausted:       &isExhausted,
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Quota().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Quota().ResetsAt()).UTC()
		resp.Quota.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func matchResultToGen(res similarity.Result) gen.MatchResponse {
	return gen.MatchResponse{
		Similarity:           res.Similarity(),
		SimilarityPercentage: res.Percentage(),
		Confidence:           gen.MatchResponseConfidence(res.Confidence()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return MissingFieldMessage
	case errors.Is(err, domain.ErrQuotaExceeded):
		return domain.ErrQuotaExceeded.Error()
	default:
		return "internal error"
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

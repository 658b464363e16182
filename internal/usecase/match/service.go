// Package match orchestrates one lost/found comparison for the API boundary.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lostmatch/internal/domain"
	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
	logpkg "github.com/kailas-cloud/lostmatch/internal/logger"
	"github.com/kailas-cloud/lostmatch/internal/metrics"
)

// canary is scored against itself by the engine self-test.
const canary = "black leather wallet with a red zipper and two bank cards"

// Service scores description pairs under an optional quota.
type Service struct {
	scorer Scorer
	quota  QuotaChecker
}

// New creates a Service. quota can be nil (unlimited mode).
func New(scorer Scorer, quota QuotaChecker) *Service {
	return &Service{scorer: scorer, quota: quota}
}

// Match scores a lost description against a found one.
// Returns domain.ErrInvalidInput or domain.ErrQuotaExceeded.
func (s *Service) Match(ctx context.Context, lost, found string) (similarity.Result, error) {
	log := logpkg.FromContext(ctx)

	if s.quota != nil {
		if err := s.quota.Check(ctx); err != nil {
			metrics.MatchErrorsTotal.WithLabelValues(errorType(err)).Inc()
			log.Warn("Match rejected by quota", zap.Error(err))
			return similarity.Result{}, fmt.Errorf("quota check: %w", err)
		}
	}

	start := time.Now()
	res, err := s.scorer.Score(lost, found)
	duration := time.Since(start)
	if err != nil {
		metrics.MatchErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return similarity.Result{}, fmt.Errorf("score: %w", err)
	}

	metrics.MatchDuration.Observe(duration.Seconds())
	metrics.MatchSimilarity.Observe(res.Raw())
	metrics.MatchRequestsTotal.WithLabelValues(res.Confidence().Level()).Inc()

	if s.quota != nil {
		s.quota.Record(1)
	}

	log.Debug("Match scored",
		zap.Float64("similarity", res.Raw()),
		zap.String("confidence", res.Confidence().Level()),
		zap.Int("common_terms", len(res.CommonTerms())),
		zap.Duration("duration", duration),
	)

	return res, nil
}

// HealthCheck scores a canary text against itself; anything but a full
// match means the engine is broken.
func (s *Service) HealthCheck(_ context.Context) error {
	res, err := s.scorer.Score(canary, canary)
	if err != nil {
		return fmt.Errorf("engine self-test: %w", err)
	}
	if res.Similarity() != 1 {
		return fmt.Errorf("engine self-test: identical texts scored %v", res.Raw())
	}
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	default:
		return "internal"
	}
}

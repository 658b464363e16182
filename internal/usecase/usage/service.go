package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/lostmatch/internal/domain/usage"
	"github.com/kailas-cloud/lostmatch/internal/domain/usage/metrics"
	"github.com/kailas-cloud/lostmatch/internal/domain/usage/quota"
)

// Service handles usage reporting.
type Service struct {
	qr  QuotaReader
	now func() time.Time
}

// New creates a Service. qr can be nil (unlimited mode).
func New(qr QuotaReader) *Service {
	return &Service{qr: qr, now: time.Now}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	var start, end int64
	var limit, used, rejected int64
	remaining := int64(-1)

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.qr != nil {
			limit = s.qr.DailyLimit()
			used = s.qr.DailyUsed()
			rejected = s.qr.DailyRejected()
			remaining = s.qr.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.qr != nil {
			limit = s.qr.MonthlyLimit()
			used = s.qr.MonthlyUsed()
			rejected = s.qr.MonthlyRejected()
			remaining = s.qr.RemainingMonthly()
		}
	default:
		// total: no period boundaries, counters are kept per month at most
		if s.qr != nil {
			limit = s.qr.MonthlyLimit()
			used = s.qr.MonthlyUsed()
			rejected = s.qr.MonthlyRejected()
			remaining = s.qr.RemainingMonthly()
		}
	}

	exhausted := limit > 0 && remaining == 0
	var resetsAt int64
	if limit > 0 {
		resetsAt = end
	}

	q := quota.New(limit, remaining, exhausted, resetsAt)
	m := metrics.New(used, rejected)

	return domusage.NewReport(period, start, end, m, q)
}

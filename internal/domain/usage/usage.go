package usage

import (
	"github.com/kailas-cloud/lostmatch/internal/domain/usage/metrics"
	"github.com/kailas-cloud/lostmatch/internal/domain/usage/quota"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod maps a query value to a Period. Unknown values default to month.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodTotal:
		return Period(s)
	default:
		return PeriodMonth
	}
}

// Report is a match API usage report for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	metrics     metrics.Metrics
	quota       quota.Quota
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, m metrics.Metrics, q quota.Quota) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		metrics:     m,
		quota:       q,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis).
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Metrics returns the usage metrics.
func (r *Report) Metrics() metrics.Metrics { return r.metrics }

// Quota returns the quota status.
func (r *Report) Quota() quota.Quota { return r.quota }

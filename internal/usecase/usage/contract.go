package usage

// QuotaReader provides read-only access to match quota state.
type QuotaReader interface {
	DailyLimit() int64
	MonthlyLimit() int64
	DailyUsed() int64
	MonthlyUsed() int64
	DailyRejected() int64
	MonthlyRejected() int64
	RemainingDaily() int64
	RemainingMonthly() int64
}

package quota

// Quota is a snapshot of the match request quota for one period.
type Quota struct {
	limit       int64
	remaining   int64
	isExhausted bool
	resetsAt    int64 // unix millis, converted to ISO 8601 at transport layer
}

// New creates a Quota snapshot. limit 0 means unlimited.
func New(limit, remaining int64, isExhausted bool, resetsAt int64) Quota {
	return Quota{
		limit:       limit,
		remaining:   remaining,
		isExhausted: isExhausted,
		resetsAt:    resetsAt,
	}
}

// Limit returns the request cap (0 = unlimited).
func (q Quota) Limit() int64 { return q.limit }

// Remaining returns requests left (-1 = unlimited).
func (q Quota) Remaining() int64 { return q.remaining }

// IsExhausted reports whether the quota is spent.
func (q Quota) IsExhausted() bool { return q.isExhausted }

// ResetsAt returns the reset timestamp (unix millis).
func (q Quota) ResetsAt() int64 { return q.resetsAt }

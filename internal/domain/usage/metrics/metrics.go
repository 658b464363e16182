package metrics

// Metrics holds match request counts for a time period.
type Metrics struct {
	requests int64
	rejected int64
}

// New creates a Metrics snapshot.
func New(requests, rejected int64) Metrics {
	return Metrics{requests: requests, rejected: rejected}
}

// Requests returns the number of scored match requests.
func (m Metrics) Requests() int64 { return m.requests }

// Rejected returns the number of requests refused by the quota.
func (m Metrics) Rejected() int64 { return m.rejected }

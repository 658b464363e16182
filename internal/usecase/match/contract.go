package match

import (
	"context"

	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
)

// Scorer compares a lost and a found description.
type Scorer interface {
	Score(lost, found string) (similarity.Result, error)
}

// QuotaChecker enforces the request quota.
type QuotaChecker interface {
	Check(ctx context.Context) error
	Record(n int64)
}

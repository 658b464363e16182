package similarity

import (
	"math"
	"strconv"
)

// MaxCommonTerms caps the shared terms reported with a result.
const MaxCommonTerms = 10

// Result is the outcome of scoring one lost/found pair.
type Result struct {
	raw         float64
	commonTerms []string
}

// NewResult creates a Result from an unrounded cosine score.
func NewResult(raw float64, commonTerms []string) Result {
	return Result{raw: raw, commonTerms: commonTerms}
}

// Raw returns the unrounded cosine similarity.
func (r Result) Raw() float64 { return r.raw }

// Similarity returns the score rounded to 4 decimals.
func (r Result) Similarity() float64 { return roundTo(r.raw, 4) }

// Percentage returns raw*100 rounded to 2 decimals. It is derived from the raw
// score, not from Similarity.
func (r Result) Percentage() float64 { return roundTo(r.raw*100, 2) }

// Confidence classifies the raw score.
func (r Result) Confidence() Confidence { return Classify(r.raw) }

// CommonTerms returns the vocabulary terms both descriptions share, strongest first.
func (r Result) CommonTerms() []string { return r.commonTerms }

// roundTo rounds half-to-even on the exact binary value, the way decimal
// formatting does.
func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return out
}

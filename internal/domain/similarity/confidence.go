package similarity

// Confidence is a discrete tier derived from a similarity score.
type Confidence string

// Confidence tiers, highest first.
const (
	ConfidenceHigh     Confidence = "High confidence match"
	ConfidencePossible Confidence = "Possible match"
	ConfidenceLow      Confidence = "Low confidence"
)

// Thresholds are inclusive lower bounds of each tier.
const (
	HighThreshold     = 0.80
	PossibleThreshold = 0.65
)

// Classify maps a score to its confidence tier.
func Classify(score float64) Confidence {
	switch {
	case score >= HighThreshold:
		return ConfidenceHigh
	case score >= PossibleThreshold:
		return ConfidencePossible
	default:
		return ConfidenceLow
	}
}

// Level returns a short label for metrics: high, possible or low.
func (c Confidence) Level() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidencePossible:
		return "possible"
	default:
		return "low"
	}
}

// String returns the human-readable label.
func (c Confidence) String() string { return string(c) }

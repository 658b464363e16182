package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AnalyzerConfig holds the term extraction rules.
type AnalyzerConfig struct {
	StopWords     []string
	NGramMin      int
	NGramMax      int
	MinTokenRunes int
}

// DefaultAnalyzerConfig returns unigrams and bigrams over tokens of two or more
// word characters with the English stop-word list removed.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		StopWords:     englishStopWords,
		NGramMin:      1,
		NGramMax:      2,
		MinTokenRunes: 2,
	}
}

// Analyzer turns raw text into vocabulary terms. It is immutable after
// construction and safe for concurrent use.
type Analyzer struct {
	stopWords     map[string]struct{}
	ngramMin      int
	ngramMax      int
	minTokenRunes int
}

// NewAnalyzer builds an Analyzer. Out-of-range settings fall back to defaults.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	def := DefaultAnalyzerConfig()
	if cfg.NGramMin <= 0 {
		cfg.NGramMin = def.NGramMin
	}
	if cfg.NGramMax < cfg.NGramMin {
		cfg.NGramMax = cfg.NGramMin
	}
	if cfg.MinTokenRunes <= 0 {
		cfg.MinTokenRunes = 1
	}

	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[w] = struct{}{}
	}
	return &Analyzer{
		stopWords:     stop,
		ngramMin:      cfg.NGramMin,
		ngramMax:      cfg.NGramMax,
		minTokenRunes: cfg.MinTokenRunes,
	}
}

// IsStopWord reports whether w is removed before weighting.
func (a *Analyzer) IsStopWord(w string) bool {
	_, ok := a.stopWords[w]
	return ok
}

// Tokens lowercases text and returns its word tokens with stop words removed.
func (a *Analyzer) Tokens(text string) []string {
	// cases.Caser keeps internal state, one per call.
	lower := cases.Lower(language.Und).String(text)

	words := strings.FieldsFunc(lower, func(r rune) bool { return !isWordRune(r) })
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < a.minTokenRunes {
			continue
		}
		if a.IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Terms returns the n-gram stream of text in document order. Bigrams join
// tokens that are adjacent once stop words are gone.
func (a *Analyzer) Terms(text string) []string {
	return a.ngrams(a.Tokens(text))
}

func (a *Analyzer) ngrams(tokens []string) []string {
	var terms []string
	for n := a.ngramMin; n <= a.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// isWordRune matches letters, numbers and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Package similarity scores how likely two free-text item descriptions refer
// to the same object, using TF-IDF weighting over the pair and cosine similarity.
package similarity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kailas-cloud/lostmatch/internal/domain"
)

// Engine scores description pairs. It holds only immutable configuration.
type Engine struct {
	analyzer *Analyzer
}

// New creates an Engine over the given analyzer.
func New(analyzer *Analyzer) *Engine {
	return &Engine{analyzer: analyzer}
}

var defaultEngine = New(NewAnalyzer(DefaultAnalyzerConfig()))

// Default returns the process-wide engine with the built-in configuration.
func Default() *Engine { return defaultEngine }

// Analyzer returns the engine's term analyzer.
func (e *Engine) Analyzer() *Analyzer { return e.analyzer }

// Score compares a lost and a found description.
func (e *Engine) Score(lost, found string) (Result, error) {
	lost = strings.TrimSpace(lost)
	found = strings.TrimSpace(found)
	if lost == "" {
		return Result{}, fmt.Errorf("lost description is empty: %w", domain.ErrInvalidInput)
	}
	if found == "" {
		return Result{}, fmt.Errorf("found description is empty: %w", domain.ErrInvalidInput)
	}

	vecs := vectorize(e.analyzer.Terms(lost), e.analyzer.Terms(found))
	raw := cosine(vecs[0], vecs[1])
	return NewResult(raw, commonTerms(vecs[0], vecs[1], MaxCommonTerms)), nil
}

// vector is a sparse term-weight vector.
type vector map[string]float64

// vectorize weights both term streams over their joint vocabulary:
// raw counts times smooth idf, then L2 normalisation.
func vectorize(docs ...[]string) []vector {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, terms := range docs {
		counts[i] = make(map[string]int, len(terms))
		for _, t := range terms {
			counts[i][t]++
		}
		for t := range counts[i] {
			df[t]++
		}
	}

	n := float64(len(docs))
	vecs := make([]vector, len(docs))
	for i, c := range counts {
		v := make(vector, len(c))
		var norm float64
		for _, t := range sortedKeys(c) {
			idf := math.Log((1+n)/(1+float64(df[t]))) + 1
			w := float64(c[t]) * idf
			v[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range v {
				v[t] /= norm
			}
		}
		vecs[i] = v
	}
	return vecs
}

// cosine is the dot product of two unit vectors, clamped to [0, 1].
// An empty vector on either side yields 0.
func cosine(a, b vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot float64
	for _, t := range sortedKeys(a) {
		if wb, ok := b[t]; ok {
			dot += a[t] * wb
		}
	}
	return math.Max(0, math.Min(1, dot))
}

// sortedKeys fixes summation order so equal inputs give bit-identical scores.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// commonTerms returns up to limit shared terms ordered by their contribution
// to the dot product, then alphabetically.
func commonTerms(a, b vector, limit int) []string {
	type contrib struct {
		term   string
		weight float64
	}
	var shared []contrib
	for t, wa := range a {
		if wb, ok := b[t]; ok {
			shared = append(shared, contrib{term: t, weight: wa * wb})
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].weight != shared[j].weight {
			return shared[i].weight > shared[j].weight
		}
		return shared[i].term < shared[j].term
	})
	if len(shared) > limit {
		shared = shared[:limit]
	}
	terms := make([]string, len(shared))
	for i, c := range shared {
		terms[i] = c.term
	}
	return terms
}

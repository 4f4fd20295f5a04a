package corpus

import (
	"math"
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize lowercases text, replaces punctuation with spaces and collapses
// runs of whitespace. Both queries and corpus entries pass through it before
// any similarity comparison.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	lowered = nonWordPattern.ReplaceAllString(lowered, " ")
	lowered = whitespacePattern.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(lowered)
}

// Strategy builds a similarity index over a fixed set of normalized
// documents. Scores must be deterministic for a given document set, bounded
// to [0,1] and monotone in shared-token overlap.
type Strategy interface {
	Index(docs []string) Index
}

// Index scores a normalized query against the indexed documents. Best
// returns the highest-scoring document for which keep returns true; a nil
// keep admits every document. ok is false when nothing scored above zero.
type Index interface {
	Best(query string, keep func(i int) bool) (idx int, score float64, ok bool)
}

// TFIDF is the production similarity strategy: cosine similarity over
// l2-normalized tf-idf vectors, mirroring the smoothed-idf convention.
type TFIDF struct{}

type tfidfIndex struct {
	vocab map[string]int
	idf   []float64
	docs  []map[int]float64
}

func (TFIDF) Index(docs []string) Index {
	idx := &tfidfIndex{vocab: make(map[string]int)}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = termCounts(doc)
		for term := range counts[i] {
			df[term]++
			if _, ok := idx.vocab[term]; !ok {
				idx.vocab[term] = len(idx.vocab)
			}
		}
	}

	idx.idf = make([]float64, len(idx.vocab))
	n := float64(len(docs))
	for term, id := range idx.vocab {
		idx.idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	idx.docs = make([]map[int]float64, len(docs))
	for i, c := range counts {
		idx.docs[i] = idx.vectorize(c)
	}
	return idx
}

func (x *tfidfIndex) vectorize(counts map[string]int) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	norm := 0.0
	for term, count := range counts {
		id, ok := x.vocab[term]
		if !ok {
			continue
		}
		w := float64(count) * x.idf[id]
		vec[id] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for id := range vec {
			vec[id] /= norm
		}
	}
	return vec
}

func (x *tfidfIndex) Best(query string, keep func(int) bool) (int, float64, bool) {
	qv := x.vectorize(termCounts(query))
	if len(qv) == 0 {
		return 0, 0, false
	}

	bestIdx, bestScore := -1, 0.0
	for i, dv := range x.docs {
		if keep != nil && !keep(i) {
			continue
		}
		score := 0.0
		for id, w := range qv {
			score += w * dv[id]
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	return bestIdx, clampScore(bestScore), true
}

// Jaccard is the token-overlap alternative strategy, kept for tests and as a
// drop-in for corpora too small to carry useful idf weights.
type Jaccard struct{}

type jaccardIndex struct {
	docs []map[string]struct{}
}

func (Jaccard) Index(docs []string) Index {
	idx := &jaccardIndex{docs: make([]map[string]struct{}, len(docs))}
	for i, doc := range docs {
		idx.docs[i] = tokenSet(doc)
	}
	return idx
}

func (x *jaccardIndex) Best(query string, keep func(int) bool) (int, float64, bool) {
	qs := tokenSet(query)
	if len(qs) == 0 {
		return 0, 0, false
	}

	bestIdx, bestScore := -1, 0.0
	for i, ds := range x.docs {
		if keep != nil && !keep(i) {
			continue
		}
		if len(ds) == 0 {
			continue
		}
		shared := 0
		for tok := range qs {
			if _, ok := ds[tok]; ok {
				shared++
			}
		}
		union := len(qs) + len(ds) - shared
		score := float64(shared) / float64(union)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	return bestIdx, clampScore(bestScore), true
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range strings.Fields(text) {
		counts[tok]++
	}
	return counts
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		set[tok] = struct{}{}
	}
	return set
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

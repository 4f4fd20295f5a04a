package corpus

// Match is one retrieved candidate response.
type Match struct {
	Response   string
	Score      float64
	SourceID   string
	EmotionTag string
}

// Matcher retrieves the best prior response across both corpora. It is
// stateless per call: the threshold is supplied by the caller, so the
// orchestrator can retry the same matcher at a lower bar.
type Matcher struct {
	store      *Store
	emotionIdx Index
	supportIdx Index
}

// NewMatcher indexes the store's records with the given strategy. Indexing
// an empty store is fine; such a matcher simply never matches.
func NewMatcher(store *Store, strategy Strategy) *Matcher {
	if store == nil {
		store = NewStore(nil, nil)
	}
	return &Matcher{
		store:      store,
		emotionIdx: strategy.Index(normalizedQueries(store.emotion)),
		supportIdx: strategy.Index(normalizedQueries(store.support)),
	}
}

func normalizedQueries(records []Record) []string {
	docs := make([]string, len(records))
	for i, r := range records {
		docs[i] = Normalize(r.Query)
	}
	return docs
}

// BestMatch returns the single best-scoring record across both corpora whose
// score reaches threshold. A non-empty, non-neutral emotion restricts the
// emotion corpus to records whose tag matches it; the support corpus is
// always searched unrestricted.
func (m *Matcher) BestMatch(text, emotion string, threshold float64) (Match, bool) {
	query := Normalize(text)
	if query == "" {
		return Match{}, false
	}

	best := Match{Score: -1}

	if emotion != "" && emotion != "neutral" {
		keep := func(i int) bool {
			return tagMatches(m.store.emotion[i].EmotionTag, emotion)
		}
		if idx, score, ok := m.emotionIdx.Best(query, keep); ok && score > best.Score {
			r := m.store.emotion[idx]
			best = Match{Response: r.Response, Score: score, SourceID: r.SourceID, EmotionTag: r.EmotionTag}
		}
	}

	if idx, score, ok := m.supportIdx.Best(query, nil); ok && score > best.Score {
		r := m.store.support[idx]
		best = Match{Response: r.Response, Score: score, SourceID: r.SourceID, EmotionTag: r.EmotionTag}
	}

	if best.Score < threshold {
		return Match{}, false
	}
	return best, true
}

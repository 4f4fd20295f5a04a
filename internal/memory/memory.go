// Package memory keeps per-user conversation history for the lifetime of the
// process and derives trend summaries from it.
package memory

import (
	"sync"
	"time"

	"justwe/backend/internal/classify"
)

// Capacity bounds each user's ring buffer; the oldest turn is evicted first.
const Capacity = 20

// Turn is one completed exchange. Turns are owned exclusively by the store.
type Turn struct {
	At          time.Time
	UserMessage string
	Response    string
	Emotion     classify.EmotionAssessment
	Crisis      classify.CrisisAssessment
}

// Summary is a derived, non-owning view over a user's recent turns.
type Summary struct {
	MessageCount       int
	DominantEmotion    classify.Emotion
	HighestCrisisLevel classify.CrisisLevel
	EmotionTrend       classify.EmotionTrend
	CrisisTrend        classify.CrisisTrend
	LastInteraction    time.Time
}

// Store is the keyed conversation memory. All methods are safe for
// concurrent use; entries for different users are fully independent.
type Store struct {
	mu     sync.Mutex
	byUser map[string][]Turn
}

func NewStore() *Store {
	return &Store{byUser: make(map[string][]Turn)}
}

// Append records a turn for a user, evicting the oldest once over capacity.
func (s *Store) Append(userID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.byUser[userID], turn)
	if len(turns) > Capacity {
		turns = turns[len(turns)-Capacity:]
	}
	s.byUser[userID] = turns
}

// Turns returns a copy of the user's stored turns, oldest first.
func (s *Store) Turns(userID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.byUser[userID]
	out := make([]Turn, len(stored))
	copy(out, stored)
	return out
}

// Summarize derives the rolling view for one user. An unknown user yields a
// zero-count summary with neutral/none defaults.
func (s *Store) Summarize(userID string) Summary {
	turns := s.Turns(userID)

	summary := Summary{
		MessageCount:       len(turns),
		DominantEmotion:    classify.EmotionNeutral,
		HighestCrisisLevel: classify.LevelNone,
		EmotionTrend:       classify.EmotionTrendStable,
		CrisisTrend:        classify.CrisisTrendStable,
	}
	if len(turns) == 0 {
		return summary
	}

	emotions := make([]classify.Emotion, len(turns))
	levels := make([]classify.CrisisLevel, len(turns))
	for i, t := range turns {
		emotions[i] = t.Emotion.Primary
		levels[i] = t.Crisis.Level
		if t.Crisis.Level.Rank() > summary.HighestCrisisLevel.Rank() {
			summary.HighestCrisisLevel = t.Crisis.Level
		}
	}

	summary.DominantEmotion = dominantEmotion(emotions)
	summary.EmotionTrend = classify.EmotionTrendOf(emotions)
	summary.CrisisTrend = classify.CrisisTrendOf(levels)
	summary.LastInteraction = turns[len(turns)-1].At
	return summary
}

// dominantEmotion is the mode of the sequence; ties break toward the emotion
// seen most recently.
func dominantEmotion(emotions []classify.Emotion) classify.Emotion {
	counts := make(map[classify.Emotion]int)
	lastSeen := make(map[classify.Emotion]int)
	for i, e := range emotions {
		counts[e]++
		lastSeen[e] = i
	}

	best := classify.EmotionNeutral
	bestCount, bestSeen := 0, -1
	for e, count := range counts {
		if count > bestCount || (count == bestCount && lastSeen[e] > bestSeen) {
			best, bestCount, bestSeen = e, count, lastSeen[e]
		}
	}
	return best
}

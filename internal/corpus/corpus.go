// Package corpus holds the read-only response corpora and the similarity
// matcher that retrieves prior responses for reuse.
package corpus

import "strings"

// Source ids for the two logical corpora.
const (
	SourceEmotion = "emotion_dialogues"
	SourceSupport = "support_qa"
)

// Record is one reusable query/response pair. Records are loaded once at
// startup and never mutated afterwards.
type Record struct {
	Query      string
	Response   string
	EmotionTag string
	SourceID   string
}

// Store is an immutable snapshot of both corpora. A nil or empty store is
// valid and simply never matches; corpus load failure degrades to that.
type Store struct {
	emotion []Record
	support []Record
}

func NewStore(emotion, support []Record) *Store {
	return &Store{emotion: emotion, support: support}
}

// Empty reports whether no records were loaded at all.
func (s *Store) Empty() bool {
	return s == nil || (len(s.emotion) == 0 && len(s.support) == 0)
}

// Stats returns per-source record counts.
func (s *Store) Stats() map[string]int {
	if s == nil {
		return map[string]int{SourceEmotion: 0, SourceSupport: 0}
	}
	return map[string]int{
		SourceEmotion: len(s.emotion),
		SourceSupport: len(s.support),
	}
}

// tagMatches reports whether a record's emotion tag covers the requested
// emotion, by case-insensitive substring.
func tagMatches(tag, emotion string) bool {
	if emotion == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tag), strings.ToLower(emotion))
}

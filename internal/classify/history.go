package classify

import "time"

// historyCap bounds each rolling history; older entries are dropped first.
const historyCap = 10

// trendWindow is how many recent entries trend assessment looks at.
const trendWindow = 3

// CrisisRecord is one appended crisis history entry.
type CrisisRecord struct {
	Level      CrisisLevel
	Confidence float64
	Indicators []string
	At         time.Time
}

// CrisisHistory is a capped rolling window of past crisis assessments for a
// single user. It is not safe for concurrent use; callers serialize per user.
type CrisisHistory struct {
	entries []CrisisRecord
}

func (h *CrisisHistory) Append(r CrisisRecord) {
	h.entries = append(h.entries, r)
	if len(h.entries) > historyCap {
		h.entries = h.entries[len(h.entries)-historyCap:]
	}
}

func (h *CrisisHistory) Len() int {
	return len(h.entries)
}

// Levels returns the stored levels oldest first.
func (h *CrisisHistory) Levels() []CrisisLevel {
	levels := make([]CrisisLevel, len(h.entries))
	for i, e := range h.entries {
		levels[i] = e.Level
	}
	return levels
}

// EmotionRecord is one appended emotion history entry.
type EmotionRecord struct {
	Emotion    Emotion
	Intensity  Intensity
	Confidence float64
	At         time.Time
}

// EmotionHistory mirrors CrisisHistory for emotion assessments.
type EmotionHistory struct {
	entries []EmotionRecord
}

func (h *EmotionHistory) Append(r EmotionRecord) {
	h.entries = append(h.entries, r)
	if len(h.entries) > historyCap {
		h.entries = h.entries[len(h.entries)-historyCap:]
	}
}

func (h *EmotionHistory) Len() int {
	return len(h.entries)
}

func (h *EmotionHistory) Emotions() []Emotion {
	emotions := make([]Emotion, len(h.entries))
	for i, e := range h.entries {
		emotions[i] = e.Emotion
	}
	return emotions
}

// CrisisTrendOf derives a trend from a level sequence, oldest first. Fewer
// than three entries is always stable. The same windowed rule is applied to
// classifier histories and to conversation memory.
func CrisisTrendOf(levels []CrisisLevel) CrisisTrend {
	if len(levels) < trendWindow {
		return CrisisTrendStable
	}
	recent := levels[len(levels)-trendWindow:]

	noneCount := 0
	for _, level := range recent {
		if level == LevelHigh || level == LevelImmediate {
			return CrisisTrendEscalating
		}
		if level == LevelNone {
			noneCount++
		}
	}
	if noneCount >= 2 {
		return CrisisTrendImproving
	}
	return CrisisTrendStable
}

// EmotionTrendOf derives a trend from an emotion sequence, oldest first.
// Improving means mostly happy lately; declining means mostly sad or anxious.
func EmotionTrendOf(emotions []Emotion) EmotionTrend {
	if len(emotions) < trendWindow {
		return EmotionTrendStable
	}
	recent := emotions[len(emotions)-trendWindow:]

	happy, declining := 0, 0
	for _, emotion := range recent {
		switch emotion {
		case EmotionHappy:
			happy++
		case EmotionSad, EmotionAnxious:
			declining++
		}
	}
	if happy >= 2 {
		return EmotionTrendImproving
	}
	if declining >= 2 {
		return EmotionTrendDeclining
	}
	return EmotionTrendStable
}

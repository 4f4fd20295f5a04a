// Package classify implements pattern-rule based crisis and emotion
// classification over single utterances, with short rolling histories used
// for trend assessment.
package classify

import "time"

type CrisisLevel string

const (
	LevelNone      CrisisLevel = "none"
	LevelLow       CrisisLevel = "low"
	LevelMedium    CrisisLevel = "medium"
	LevelHigh      CrisisLevel = "high"
	LevelImmediate CrisisLevel = "immediate"
)

var crisisLevelRank = map[CrisisLevel]int{
	LevelNone:      0,
	LevelLow:       1,
	LevelMedium:    2,
	LevelHigh:      3,
	LevelImmediate: 4,
}

// Rank returns the total-order position of the level, none lowest.
func (l CrisisLevel) Rank() int {
	return crisisLevelRank[l]
}

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

type Emotion string

const (
	EmotionAnxious  Emotion = "anxious"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionStressed Emotion = "stressed"
	EmotionLonely   Emotion = "lonely"
	EmotionHappy    Emotion = "happy"
	EmotionConfused Emotion = "confused"
	EmotionNeutral  Emotion = "neutral"
)

type CrisisTrend string

const (
	CrisisTrendStable     CrisisTrend = "stable"
	CrisisTrendEscalating CrisisTrend = "escalating"
	CrisisTrendImproving  CrisisTrend = "improving"
)

type EmotionTrend string

const (
	EmotionTrendStable    EmotionTrend = "stable"
	EmotionTrendImproving EmotionTrend = "improving"
	EmotionTrendDeclining EmotionTrend = "declining"
)

// CrisisAssessment is the immutable result of one crisis evaluation.
type CrisisAssessment struct {
	Level            CrisisLevel
	Confidence       float64
	Indicators       []string
	EscalationNeeded bool
	Trend            CrisisTrend
	Resources        ResourceBundle
	Timestamp        time.Time
}

// EmotionScore is one entry of an assessment's per-emotion breakdown.
type EmotionScore struct {
	Emotion   Emotion
	Intensity Intensity
	Score     int
}

// EmotionAssessment is the immutable result of one emotion evaluation.
type EmotionAssessment struct {
	Primary     Emotion
	Intensity   Intensity
	Confidence  float64
	AllEmotions []EmotionScore
	Trend       EmotionTrend
	Timestamp   time.Time
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

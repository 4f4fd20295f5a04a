package respond

import (
	"strings"

	"justwe/backend/internal/classify"
)

var supportiveWords = []string{
	"understand", "support", "here for you", "care", "listen",
	"valid", "feel", "together", "help", "safe",
}

var crisisSupportWords = []string{
	"988", "hotline", "crisis", "professional", "counselor",
	"therapist", "emergency", "reach out",
}

var emotionAckWords = map[classify.Emotion][]string{
	classify.EmotionAnxious:  {"anxious", "anxiety", "worry", "calm", "breathe"},
	classify.EmotionSad:      {"sad", "sadness", "grief", "heavy", "difficult"},
	classify.EmotionAngry:    {"angry", "anger", "frustrat", "unfair"},
	classify.EmotionStressed: {"stress", "pressure", "overwhelm", "break"},
	classify.EmotionLonely:   {"lonely", "alone", "connect", "company"},
	classify.EmotionHappy:    {"happy", "joy", "wonderful", "celebrate", "great"},
	classify.EmotionConfused: {"confus", "unclear", "sort", "step"},
}

// ScoreQuality rates a candidate reply between 0 and 1. Every reply starts
// at 0.5 and earns bonuses for length, supportive tone, engagement and
// situational fit.
func ScoreQuality(reply string, emotion classify.Emotion, crisis classify.CrisisLevel) float64 {
	lower := strings.ToLower(reply)
	score := 0.5

	if n := len(reply); n >= 50 && n <= 300 {
		score += 0.1
	}
	if containsAny(lower, supportiveWords) {
		score += 0.1
	}
	if strings.Contains(reply, "?") {
		score += 0.1
	}
	if crisis != classify.LevelNone && containsAny(lower, crisisSupportWords) {
		score += 0.2
	}
	// The emotion bonus requires an actual vocabulary hit; neutral has no
	// vocabulary and earns nothing here, unlike the appropriateness flag.
	if emotion != classify.EmotionNeutral && containsAny(lower, emotionAckWords[emotion]) {
		score += 0.1
	}
	return clampScore(score)
}

// EmotionAppropriate reports whether the reply acknowledges the user's
// detected emotion. Neutral always passes.
func EmotionAppropriate(lowerReply string, emotion classify.Emotion) bool {
	words, ok := emotionAckWords[emotion]
	if !ok {
		return true
	}
	return containsAny(lowerReply, words)
}

// CrisisAppropriate reports whether a reply to a crisis-level message
// points the user at professional help.
func CrisisAppropriate(reply string, crisis classify.CrisisLevel) bool {
	if crisis == classify.LevelNone || crisis == classify.LevelLow {
		return true
	}
	return containsAny(strings.ToLower(reply), crisisSupportWords)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
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

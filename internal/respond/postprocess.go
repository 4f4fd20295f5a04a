package respond

import (
	"fmt"
	"regexp"
	"strings"

	"justwe/backend/internal/classify"
)

const (
	maxSentences   = 3
	maxResponseLen = 300
)

var emojiPattern = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{1F1E6}-\x{1F1FF}]`)

var emotionEmoji = map[classify.Emotion]string{
	classify.EmotionAnxious:  "😟",
	classify.EmotionSad:      "😢",
	classify.EmotionAngry:    "😠",
	classify.EmotionStressed: "😣",
	classify.EmotionLonely:   "🤗",
	classify.EmotionHappy:    "😊",
	classify.EmotionConfused: "🤔",
}

var emotionHeading = map[classify.Emotion]string{
	classify.EmotionAnxious:  "🌱 Here for You",
	classify.EmotionSad:      "💙 Gentle Support",
	classify.EmotionAngry:    "🔥 Let's Cool Down",
	classify.EmotionStressed: "🧘 Quick Tip",
	classify.EmotionLonely:   "🤗 You're Not Alone",
	classify.EmotionHappy:    "🌞 Celebrate!",
	classify.EmotionConfused: "❓ Let's Clarify",
	classify.EmotionNeutral:  "💬 Checking In",
}

// PostProcess trims a raw generated reply down to a short, warm message:
// at most three sentences, at least one emoji, a 300-character cap and a
// mood heading on top.
func PostProcess(raw string, emotion classify.Emotion) string {
	text := firstSentences(strings.TrimSpace(raw), maxSentences)
	text = ensureEmoji(text, emotion)
	if runes := []rune(text); len(runes) > maxResponseLen {
		text = string(runes[:maxResponseLen-3]) + "..."
	}
	return moodHeading(emotion) + "\n" + text
}

// firstSentences keeps at most n sentences, split on terminal punctuation
// followed by whitespace.
func firstSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			// Consume a run of terminators before deciding the boundary.
			for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
				i++
			}
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t') {
				count++
				if count >= n {
					return strings.TrimSpace(string(runes[:i+1]))
				}
			}
		}
	}
	return strings.TrimSpace(text)
}

func ensureEmoji(text string, emotion classify.Emotion) string {
	if emojiPattern.MatchString(text) {
		return text
	}
	emoji, ok := emotionEmoji[emotion]
	if !ok {
		emoji = "💚"
	}
	return text + " " + emoji
}

func moodHeading(emotion classify.Emotion) string {
	heading, ok := emotionHeading[emotion]
	if !ok {
		heading = "💬 Support Message"
	}
	mood := "Checking in"
	if emotion != classify.EmotionNeutral {
		mood = capitalize(string(emotion))
	}
	return fmt.Sprintf("%s — Mood: %s", heading, mood)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package respond

import (
	"fmt"
	"strings"

	"justwe/backend/internal/classify"
)

// historyLimit bounds how many past turns ride along on a generation request.
const historyLimit = 10

const systemPrompt = `You are "Just We," a supportive, empathetic companion. Always sound human, warm, and natural, never robotic. Keep responses short (1-3 sentences) and include one or two fitting emojis placed naturally.

Your role is to:
- Listen actively and non-judgmentally
- Ask gentle, open-ended questions that encourage reflection
- Offer grounding exercises and coping strategies
- Provide emotional validation and support
- Recommend professional help when appropriate

Adapt your tone to the user's emotional intensity, use simple and clear language, and always end with a gentle invitation to continue the conversation.`

var emotionGuidance = map[classify.Emotion]string{
	classify.EmotionAnxious:  "Focus on grounding techniques, breathing exercises, and reassurance.",
	classify.EmotionSad:      "Offer comfort, validation, and gentle encouragement.",
	classify.EmotionAngry:    "Acknowledge their feelings and help them find healthy ways to express anger.",
	classify.EmotionStressed: "Help them break things down and find coping strategies.",
	classify.EmotionLonely:   "Offer connection and suggest reaching out to others.",
	classify.EmotionHappy:    "Celebrate their positive emotions and encourage continued positive activities.",
	classify.EmotionConfused: "Help them clarify their thoughts and feelings.",
}

// BuildMessages assembles the generation conversation: system prompt, then
// emotion and crisis context when present, the last turns of history (user
// turns annotated with the detected emotion), and finally the new utterance.
func BuildMessages(userMessage string, history []ChatTurn, emotion classify.EmotionAssessment, crisis classify.CrisisAssessment) []ChatTurn {
	messages := make([]ChatTurn, 0, len(history)+4)
	messages = append(messages, ChatTurn{Role: "system", Content: systemPrompt})

	if emotion.Primary != classify.EmotionNeutral {
		messages = append(messages, ChatTurn{Role: "system", Content: emotionContext(emotion)})
	}
	if crisis.Level != classify.LevelNone {
		messages = append(messages, ChatTurn{Role: "system", Content: crisisContext(crisis)})
	}

	recent := history
	if len(recent) > historyLimit {
		recent = recent[len(recent)-historyLimit:]
	}
	for _, turn := range recent {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		content := strings.TrimSpace(turn.Content)
		if (role != "user" && role != "assistant") || content == "" {
			continue
		}
		if role == "user" && emotion.Primary != classify.EmotionNeutral {
			content = fmt.Sprintf("[User appears %s with %s intensity] %s", emotion.Primary, emotion.Intensity, content)
		}
		messages = append(messages, ChatTurn{Role: role, Content: content})
	}

	messages = append(messages, ChatTurn{Role: "user", Content: userMessage})
	return messages
}

func emotionContext(emotion classify.EmotionAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EMOTION CONTEXT: The user appears to be feeling %s with %s intensity (confidence: %.2f). ",
		emotion.Primary, emotion.Intensity, emotion.Confidence)

	switch emotion.Trend {
	case classify.EmotionTrendImproving:
		b.WriteString("Their emotional state appears to be improving. ")
	case classify.EmotionTrendDeclining:
		b.WriteString("Their emotional state appears to be declining and may need increased support. ")
	}

	if guidance, ok := emotionGuidance[emotion.Primary]; ok {
		b.WriteString(guidance)
	} else {
		b.WriteString("Provide appropriate support for their emotional state.")
	}
	return b.String()
}

func crisisContext(crisis classify.CrisisAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CRISIS CONTEXT: User shows %s crisis indicators. ", crisis.Level)

	if crisis.EscalationNeeded {
		b.WriteString("IMMEDIATE ESCALATION NEEDED. ")
	}
	switch crisis.Trend {
	case classify.CrisisTrendEscalating:
		b.WriteString("Crisis level appears to be escalating. ")
	case classify.CrisisTrendImproving:
		b.WriteString("Crisis level appears to be improving. ")
	}

	switch crisis.Level {
	case classify.LevelMedium:
		b.WriteString("Offer support and suggest professional help if needed. Monitor for escalation.")
	default:
		b.WriteString("Provide gentle support and monitor for changes.")
	}
	return b.String()
}

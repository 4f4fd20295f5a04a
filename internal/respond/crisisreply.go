package respond

import (
	"fmt"
	"strings"

	"justwe/backend/internal/classify"
)

// CrisisResponse renders the crisis-protocol reply for an escalated
// assessment. High and immediate share one parameterized template; only the
// urgency wording and the trend addendum vary.
func CrisisResponse(crisis classify.CrisisAssessment) string {
	urgency := "right now"
	if crisis.Level == classify.LevelImmediate {
		urgency = "immediately"
	}

	var b strings.Builder
	b.WriteString("I'm really concerned about what you're sharing with me, and I want you to know that your life has value and you matter.\n\n")
	fmt.Fprintf(&b, "If you're having thoughts of harming yourself, please know that help is available %s:\n\n", urgency)

	b.WriteString("🆘 Immediate Help:\n")
	for _, hotline := range crisis.Resources.Hotlines {
		fmt.Fprintf(&b, "• %s: %s\n", hotline.Name, hotline.Contact)
	}

	b.WriteString("\nYou don't have to go through this alone. There are people who care about you and want to help. Please reach out to one of these resources, or talk to someone you trust - a friend, family member, teacher, or mental health professional.\n")

	if crisis.Trend == classify.CrisisTrendEscalating {
		b.WriteString("\nI've also noticed things have been sounding heavier over our last few messages. Please don't wait to reach out - talking to someone trained to help can make a real difference right now.\n")
	}

	b.WriteString("\nYour feelings are valid, and it's okay to ask for help. You deserve support and care. Would you like to talk more about what's going on? I'm here to listen.")
	return b.String()
}

package classify

import (
	"strings"
	"testing"
)

func newCrisisClassifier(t *testing.T) *CrisisClassifier {
	t.Helper()
	c, err := NewCrisisClassifier()
	if err != nil {
		t.Fatalf("failed to build crisis classifier: %v", err)
	}
	return c
}

func TestCrisisSeverityFirstPriority(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	// Mixing an immediate phrase with several medium phrases must still
	// classify as immediate.
	text := "I hate myself, nothing matters, I'm hopeless and I want to kill myself"
	got := c.Assess(text, &hist)
	if got.Level != LevelImmediate {
		t.Fatalf("expected immediate, got %s", got.Level)
	}
	if !got.EscalationNeeded {
		t.Fatalf("expected escalation for immediate level")
	}
	found := false
	for _, ind := range got.Indicators {
		if strings.EqualFold(ind, "kill myself") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'kill myself' among indicators, got %v", got.Indicators)
	}
}

func TestCrisisWantToDie(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	got := c.Assess("I want to die", &hist)
	if got.Level != LevelHigh && got.Level != LevelImmediate {
		t.Fatalf("expected at least high, got %s", got.Level)
	}
	if !got.EscalationNeeded {
		t.Fatalf("expected escalation_needed for %s", got.Level)
	}
	if len(got.Resources.Hotlines) == 0 {
		t.Fatalf("expected hotline resources for %s", got.Level)
	}
}

func TestCrisisEmptyInput(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	got := c.Assess("   ", &hist)
	if got.Level != LevelNone {
		t.Fatalf("expected none, got %s", got.Level)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", got.Confidence)
	}
	if len(got.Indicators) != 0 {
		t.Fatalf("expected no indicators, got %v", got.Indicators)
	}
}

func TestCrisisConfidenceBounds(t *testing.T) {
	c := newCrisisClassifier(t)

	inputs := []string{
		"",
		"hello there",
		"I want to die and kill myself, suicide, overdose, goodbye forever",
		"i hate myself",
		"I'm struggling and can't sleep, everything is too much",
	}
	for _, text := range inputs {
		var hist CrisisHistory
		got := c.Assess(text, &hist)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("confidence out of range for %q: %v", text, got.Confidence)
		}
	}
}

func TestCrisisTrendEscalating(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	c.Assess("just a normal day", &hist)
	c.Assess("I can't take it anymore", &hist)
	got := c.Assess("I want to die", &hist)
	if got.Trend != CrisisTrendEscalating {
		t.Fatalf("expected escalating trend, got %s", got.Trend)
	}
}

func TestCrisisTrendImproving(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	c.Assess("i hate myself", &hist)
	c.Assess("a pretty normal day", &hist)
	c.Assess("things went fine", &hist)
	got := c.Assess("nothing much going on", &hist)
	if got.Trend != CrisisTrendImproving {
		t.Fatalf("expected improving trend, got %s", got.Trend)
	}
	if got.EscalationNeeded {
		t.Fatalf("did not expect escalation while improving")
	}
}

func TestCrisisTrendEscalationFromHistory(t *testing.T) {
	// A calm message right after high-severity entries still escalates.
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	c.Assess("I want to die", &hist)
	c.Assess("I give up", &hist)
	got := c.Assess("I guess today was okay", &hist)
	if got.Level != LevelNone {
		t.Fatalf("expected none for calm text, got %s", got.Level)
	}
	if got.Trend != CrisisTrendEscalating {
		t.Fatalf("expected escalating trend from history, got %s", got.Trend)
	}
	if !got.EscalationNeeded {
		t.Fatalf("expected escalation_needed from escalating trend")
	}
}

func TestCrisisHistoryCap(t *testing.T) {
	c := newCrisisClassifier(t)
	var hist CrisisHistory

	for i := 0; i < 25; i++ {
		c.Assess("a quiet day", &hist)
	}
	if hist.Len() != historyCap {
		t.Fatalf("expected history capped at %d, got %d", historyCap, hist.Len())
	}
}

func TestCrisisTrendOfWindow(t *testing.T) {
	levels := []CrisisLevel{LevelNone, LevelNone, LevelHigh, LevelHigh, LevelMedium}
	if got := CrisisTrendOf(levels); got != CrisisTrendEscalating {
		t.Fatalf("expected escalating over last 3, got %s", got)
	}
	if got := CrisisTrendOf([]CrisisLevel{LevelHigh}); got != CrisisTrendStable {
		t.Fatalf("expected stable for short history, got %s", got)
	}
	if got := CrisisTrendOf([]CrisisLevel{LevelMedium, LevelLow, LevelNone, LevelLow}); got != CrisisTrendStable {
		t.Fatalf("expected stable when only one none in window, got %s", got)
	}
}

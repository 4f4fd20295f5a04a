package classify

import "testing"

func newEmotionClassifier(t *testing.T) *EmotionClassifier {
	t.Helper()
	c, err := NewEmotionClassifier()
	if err != nil {
		t.Fatalf("failed to build emotion classifier: %v", err)
	}
	return c
}

func TestEmotionAnxiousPrimary(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	got := c.Assess("I'm feeling really anxious today", &hist)
	if got.Primary != EmotionAnxious {
		t.Fatalf("expected anxious, got %s", got.Primary)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", got.Confidence)
	}
	if len(got.AllEmotions) == 0 {
		t.Fatalf("expected a nonzero emotion breakdown")
	}
}

func TestEmotionIntensityTracksHighestTier(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	got := c.Assess("I'm worried and my heart racing won't stop, total panic", &hist)
	if got.Primary != EmotionAnxious {
		t.Fatalf("expected anxious, got %s", got.Primary)
	}
	if got.Intensity != IntensityHigh {
		t.Fatalf("expected high intensity, got %s", got.Intensity)
	}
}

func TestEmotionNeutralWhenNoMatches(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	got := c.Assess("the meeting starts at noon", &hist)
	if got.Primary != EmotionNeutral {
		t.Fatalf("expected neutral, got %s", got.Primary)
	}
	if got.Intensity != IntensityLow {
		t.Fatalf("expected low intensity for neutral, got %s", got.Intensity)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", got.Confidence)
	}
	if len(got.AllEmotions) != 0 {
		t.Fatalf("expected empty breakdown, got %v", got.AllEmotions)
	}
}

func TestEmotionCanonicalTieBreak(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	// One anxious match and one sad match: anxious is declared first in the
	// canonical order and must win the tie.
	got := c.Assess("I'm worried and pretty gloomy", &hist)
	if got.Primary != EmotionAnxious {
		t.Fatalf("expected tie to break toward anxious, got %s", got.Primary)
	}
}

func TestEmotionTrendImproving(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	c.Assess("I'm so happy today", &hist)
	c.Assess("feeling really glad about everything", &hist)
	got := c.Assess("today was wonderful", &hist)
	if got.Trend != EmotionTrendImproving {
		t.Fatalf("expected improving after three happy turns, got %s", got.Trend)
	}
}

func TestEmotionTrendDeclining(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	c.Assess("I'm so sad and crying", &hist)
	c.Assess("feeling anxious and afraid", &hist)
	got := c.Assess("nothing to report", &hist)
	if got.Trend != EmotionTrendDeclining {
		t.Fatalf("expected declining trend, got %s", got.Trend)
	}
}

func TestEmotionHistoryCap(t *testing.T) {
	c := newEmotionClassifier(t)
	var hist EmotionHistory

	for i := 0; i < 30; i++ {
		c.Assess("feeling okay", &hist)
	}
	if hist.Len() != historyCap {
		t.Fatalf("expected history capped at %d, got %d", historyCap, hist.Len())
	}
}

func TestEmotionTrendOfWindow(t *testing.T) {
	if got := EmotionTrendOf([]Emotion{EmotionHappy, EmotionHappy, EmotionNeutral}); got != EmotionTrendImproving {
		t.Fatalf("expected improving, got %s", got)
	}
	if got := EmotionTrendOf([]Emotion{EmotionSad, EmotionAnxious, EmotionNeutral}); got != EmotionTrendDeclining {
		t.Fatalf("expected declining for mixed sad/anxious, got %s", got)
	}
	if got := EmotionTrendOf([]Emotion{EmotionHappy, EmotionHappy}); got != EmotionTrendStable {
		t.Fatalf("expected stable for short history, got %s", got)
	}
}

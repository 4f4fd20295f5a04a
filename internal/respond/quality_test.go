package respond

import (
	"math"
	"testing"

	"justwe/backend/internal/classify"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreQualityBaseOnly(t *testing.T) {
	// Short, no supportive words, no question, no emotion acknowledgment.
	got := ScoreQuality("Okay.", classify.EmotionSad, classify.LevelNone)
	if !almostEqual(got, 0.5) {
		t.Fatalf("expected base score 0.5, got %v", got)
	}
}

func TestScoreQualityBonuses(t *testing.T) {
	reply := "I understand how you feel. Would you like to talk about what's making you anxious?"
	got := ScoreQuality(reply, classify.EmotionAnxious, classify.LevelNone)
	// base + length + supportive + question + emotion acknowledgment.
	if !almostEqual(got, 0.9) {
		t.Fatalf("expected 0.9, got %v", got)
	}
}

func TestScoreQualityCapsAtOne(t *testing.T) {
	reply := "I understand this is a crisis. Please call 988 for help. Would you like to talk about feeling anxious?"
	got := ScoreQuality(reply, classify.EmotionAnxious, classify.LevelHigh)
	if !almostEqual(got, 1.0) {
		t.Fatalf("expected capped score 1.0, got %v", got)
	}
}

func TestScoreQualityCrisisBonusRequiresCrisisLevel(t *testing.T) {
	reply := "Please call 988 or reach out to a crisis counselor now"
	withCrisis := ScoreQuality(reply, classify.EmotionNeutral, classify.LevelMedium)
	withoutCrisis := ScoreQuality(reply, classify.EmotionNeutral, classify.LevelNone)
	if !almostEqual(withCrisis-withoutCrisis, 0.2) {
		t.Fatalf("expected 0.2 crisis bonus, got %v vs %v", withCrisis, withoutCrisis)
	}
}

func TestScoreQualityNoEmotionBonusForNeutral(t *testing.T) {
	// Identical reply; only the detected emotion differs. The neutral run
	// must not collect the emotion-vocabulary bonus.
	reply := "I understand how heavy and sad this feels. Would you like to talk?"
	asSad := ScoreQuality(reply, classify.EmotionSad, classify.LevelNone)
	asNeutral := ScoreQuality(reply, classify.EmotionNeutral, classify.LevelNone)
	if !almostEqual(asSad-asNeutral, 0.1) {
		t.Fatalf("expected 0.1 emotion bonus only for sad, got %v vs %v", asSad, asNeutral)
	}
}

func TestCrisisAppropriate(t *testing.T) {
	if !CrisisAppropriate("Please reach out to the 988 lifeline.", classify.LevelHigh) {
		t.Fatal("expected reply naming 988 to be crisis appropriate")
	}
	if CrisisAppropriate("That sounds nice!", classify.LevelHigh) {
		t.Fatal("expected reply without resources to be inappropriate for high crisis")
	}
	if !CrisisAppropriate("That sounds nice!", classify.LevelNone) {
		t.Fatal("expected any reply to pass when there is no crisis")
	}
}

func TestEmotionAppropriate(t *testing.T) {
	if !EmotionAppropriate("it's okay to feel anxious", classify.EmotionAnxious) {
		t.Fatal("expected anxious acknowledgment to pass")
	}
	if EmotionAppropriate("the weather is fine", classify.EmotionAnxious) {
		t.Fatal("expected unrelated reply to fail for anxious")
	}
	if !EmotionAppropriate("anything at all", classify.EmotionNeutral) {
		t.Fatal("expected neutral to always pass")
	}
}

package respond

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"justwe/backend/internal/classify"
	"justwe/backend/internal/corpus"
	"justwe/backend/internal/memory"
)

func newTestOrchestrator(t *testing.T, store *corpus.Store, gen GenerationClient) (*Orchestrator, *memory.Store) {
	t.Helper()
	crisis, err := classify.NewCrisisClassifier()
	if err != nil {
		t.Fatalf("crisis classifier: %v", err)
	}
	emotion, err := classify.NewEmotionClassifier()
	if err != nil {
		t.Fatalf("emotion classifier: %v", err)
	}
	mem := memory.NewStore()
	o := NewOrchestrator(
		crisis,
		emotion,
		corpus.NewMatcher(store, corpus.TFIDF{}),
		gen,
		NewTemplatePool(rand.New(rand.NewSource(1))),
		mem,
		Options{Model: "test-model"},
	)
	return o, mem
}

func TestRespondEmptyMessage(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil, MockGenerationClient{Reply: "hi"})
	if _, err := o.Respond(context.Background(), "u1", "   \n ", nil); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestRespondCrisisProtocol(t *testing.T) {
	o, mem := newTestOrchestrator(t, nil, MockGenerationClient{Reply: "should not be used"})

	res, err := o.Respond(context.Background(), "u1", "I want to kill myself", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceCrisisProtocol {
		t.Fatalf("expected crisis protocol source, got %q", res.Source)
	}
	if res.Crisis.Level != classify.LevelImmediate {
		t.Fatalf("expected immediate level, got %q", res.Crisis.Level)
	}
	if !strings.Contains(res.Message, "988") {
		t.Fatalf("expected crisis reply to name the 988 lifeline, got %q", res.Message)
	}
	if res.QualityScore != 1.0 {
		t.Fatalf("expected crisis quality 1.0, got %v", res.QualityScore)
	}
	if !res.CrisisAppropriate {
		t.Fatal("expected crisis reply to be flagged crisis appropriate")
	}
	if turns := mem.Turns("u1"); len(turns) != 1 {
		t.Fatalf("expected crisis exchange recorded, got %d turns", len(turns))
	}
}

func TestRespondCorpusMatchVerbatim(t *testing.T) {
	response := "Exams can stir up a lot of worry. Have you tried a short breathing break?"
	store := corpus.NewStore([]corpus.Record{{
		Query:      "I feel so anxious about my exam tomorrow",
		Response:   response,
		EmotionTag: "anxious",
		SourceID:   corpus.SourceEmotion,
	}}, nil)
	o, _ := newTestOrchestrator(t, store, MockGenerationClient{Err: errors.New("must not be called")})

	res, err := o.Respond(context.Background(), "u1", "I feel so anxious about my exam tomorrow", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceCorpus {
		t.Fatalf("expected corpus source, got %q", res.Source)
	}
	// Retrieved responses are served exactly as stored: no heading, no
	// trimming, no appended emoji.
	if res.Message != response {
		t.Fatalf("expected stored response verbatim, got %q", res.Message)
	}
	if res.Emotion.Primary != classify.EmotionAnxious {
		t.Fatalf("expected anxious, got %q", res.Emotion.Primary)
	}
}

func TestRespondGeneration(t *testing.T) {
	reply := "That sounds really heavy and sad. I'm here with you. What's weighing on you most?"
	o, _ := newTestOrchestrator(t, nil, MockGenerationClient{Reply: reply})

	res, err := o.Respond(context.Background(), "u1", "I feel really sad today", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceGenerated {
		t.Fatalf("expected generated source, got %q", res.Source)
	}
	if !strings.Contains(res.Message, "Mood: Sad") {
		t.Fatalf("expected sad mood heading, got %q", res.Message)
	}
	if !strings.Contains(res.Message, "weighing on you most") {
		t.Fatalf("expected generated body, got %q", res.Message)
	}
	if res.QualityScore < 0.5 || res.QualityScore > 1.0 {
		t.Fatalf("quality score out of range: %v", res.QualityScore)
	}
	if !res.EmotionAppropriate {
		t.Fatal("expected reply acknowledging sadness to be flagged appropriate")
	}
	if !res.CrisisAppropriate {
		t.Fatal("expected non-crisis reply to pass the crisis check")
	}
}

func TestRespondCorpusRetryAfterGenerationFailure(t *testing.T) {
	// Fifteen distinct terms, one shared with the query, put the cosine
	// score near 0.26: below the first-pass bar, above the retry bar.
	response := "Racing thoughts are exhausting. Let's slow down together, one worry at a time."
	store := corpus.NewStore([]corpus.Record{{
		Query:      "today my anxious mind keeps racing about exams grades homework teachers classrooms deadlines pressure results",
		Response:   response,
		EmotionTag: "anxious",
		SourceID:   corpus.SourceEmotion,
	}}, nil)
	o, _ := newTestOrchestrator(t, store, MockGenerationClient{Err: errors.New("upstream down")})

	res, err := o.Respond(context.Background(), "u1", "feeling anxious", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", res.Source)
	}
	if res.Message != response {
		t.Fatalf("expected retried corpus response verbatim, got %q", res.Message)
	}
}

func TestRespondTemplateFallback(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil, MockGenerationClient{Err: errors.New("upstream down")})

	res, err := o.Respond(context.Background(), "u1", "feeling anxious", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", res.Source)
	}
	matched := false
	for _, tmpl := range fallbackTemplates[classify.EmotionAnxious][classify.IntensityMedium] {
		if res.Message == tmpl {
			matched = true
		}
	}
	if !matched {
		t.Fatalf("expected an anxious medium template verbatim, got %q", res.Message)
	}
}

type panickingGenerationClient struct{}

func (panickingGenerationClient) Complete(context.Context, GenerationRequest) (string, error) {
	panic("generation client blew up")
}

func TestRespondInternalFailureReturnsError(t *testing.T) {
	o, mem := newTestOrchestrator(t, nil, panickingGenerationClient{})

	res, err := o.Respond(context.Background(), "u1", "hello there", nil)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if res.Message != "" || res.Source != "" {
		t.Fatalf("expected no partial result, got %+v", res)
	}
	if turns := mem.Turns("u1"); len(turns) != 0 {
		t.Fatalf("expected failed exchange not recorded, got %d turns", len(turns))
	}
}

func TestRespondRecordsMemoryWithCap(t *testing.T) {
	o, mem := newTestOrchestrator(t, nil, MockGenerationClient{Reply: "I'm listening. Tell me more?"})

	for i := 0; i < memory.Capacity+3; i++ {
		if _, err := o.Respond(context.Background(), "u1", "just checking in", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if turns := mem.Turns("u1"); len(turns) != memory.Capacity {
		t.Fatalf("expected memory capped at %d, got %d", memory.Capacity, len(turns))
	}
}

func TestRespondUsersIndependent(t *testing.T) {
	o, mem := newTestOrchestrator(t, nil, MockGenerationClient{Reply: "I'm here."})

	if _, err := o.Respond(context.Background(), "alice", "hello there", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns := mem.Turns("bob"); len(turns) != 0 {
		t.Fatalf("expected no turns for other user, got %d", len(turns))
	}
}

func TestRespondCrisisTrendEscalates(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil, MockGenerationClient{Reply: "I'm here for you."})

	msgs := []string{"i hate myself", "i feel hopeless and i hate myself", "i can't take it anymore"}
	var last Result
	for _, m := range msgs {
		res, err := o.Respond(context.Background(), "u1", m, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last = res
	}
	if last.Crisis.Trend != classify.CrisisTrendEscalating {
		t.Fatalf("expected escalating trend, got %q", last.Crisis.Trend)
	}
	if !last.Crisis.EscalationNeeded {
		t.Fatal("expected escalation flag after repeated crisis signals")
	}
}

func TestBuildMessagesShape(t *testing.T) {
	emotion := classify.EmotionAssessment{Primary: classify.EmotionSad, Intensity: classify.IntensityMedium, Confidence: 0.6}
	crisis := classify.CrisisAssessment{Level: classify.LevelLow}
	history := []ChatTurn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "other", Content: "dropped"},
	}

	msgs := BuildMessages("I feel down", history, emotion, crisis)
	if msgs[0].Role != "system" {
		t.Fatalf("expected system prompt first, got %q", msgs[0].Role)
	}
	// system prompt + emotion context + crisis context + 2 history + current.
	if len(msgs) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(msgs))
	}
	last := msgs[len(msgs)-1]
	if last.Role != "user" || last.Content != "I feel down" {
		t.Fatalf("expected current message last, got %+v", last)
	}
	if !strings.Contains(msgs[3].Content, "[User appears sad") {
		t.Fatalf("expected annotated user history turn, got %q", msgs[3].Content)
	}
}

func TestTemplatePoolDegradesToGeneric(t *testing.T) {
	pool := NewTemplatePool(rand.New(rand.NewSource(7)))
	got := pool.Pick(classify.EmotionNeutral, classify.IntensityLow)
	found := false
	for _, g := range genericFallbacks {
		if got == g {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a generic fallback for neutral, got %q", got)
	}
}

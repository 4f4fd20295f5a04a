package respond

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"justwe/backend/internal/classify"
	"justwe/backend/internal/corpus"
	"justwe/backend/internal/memory"
)

// Response sources, most preferred first. The fallback label covers both
// the lower-bar corpus retry and the template pool.
const (
	SourceCrisisProtocol = "crisis_protocol"
	SourceCorpus         = "corpus"
	SourceGenerated      = "generated"
	SourceFallback       = "fallback"
)

const (
	matchThreshold      = 0.3
	retryThreshold      = 0.1
	defaultGenTimeout   = 10 * time.Second
	generationTemp      = 0.7
	defaultGenMaxTokens = 300
)

// ErrEmptyMessage is returned when the incoming message is blank after
// trimming.
var ErrEmptyMessage = errors.New("message must not be empty")

// ErrInternal is returned when the pipeline fails unexpectedly; no partial
// result accompanies it.
var ErrInternal = errors.New("response pipeline failed")

// Result is everything one exchange produced, ready for the transport layer.
type Result struct {
	Message            string
	Source             string
	QualityScore       float64
	EmotionAppropriate bool
	CrisisAppropriate  bool
	Crisis             classify.CrisisAssessment
	Emotion            classify.EmotionAssessment
	Timestamp          time.Time
}

// Options tune the generation leg of the cascade.
type Options struct {
	Model      string
	MaxTokens  int
	GenTimeout time.Duration
}

// Orchestrator runs the full response cascade for each message: crisis
// check, emotion classification, corpus retrieval, generation, a lower-bar
// corpus retry and finally the template pool. It owns the per-user rolling
// classification histories.
type Orchestrator struct {
	crisis  *classify.CrisisClassifier
	emotion *classify.EmotionClassifier
	matcher *corpus.Matcher
	gen     GenerationClient
	pool    *TemplatePool
	memory  *memory.Store
	opts    Options

	mu    sync.Mutex
	users map[string]*userState
}

// userState serializes the pipeline per user; two concurrent requests for
// the same user must observe each other's history updates.
type userState struct {
	mu          sync.Mutex
	crisisHist  classify.CrisisHistory
	emotionHist classify.EmotionHistory
}

func NewOrchestrator(
	crisis *classify.CrisisClassifier,
	emotion *classify.EmotionClassifier,
	matcher *corpus.Matcher,
	gen GenerationClient,
	pool *TemplatePool,
	mem *memory.Store,
	opts Options,
) *Orchestrator {
	if opts.GenTimeout <= 0 {
		opts.GenTimeout = defaultGenTimeout
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultGenMaxTokens
	}
	return &Orchestrator{
		crisis:  crisis,
		emotion: emotion,
		matcher: matcher,
		gen:     gen,
		pool:    pool,
		memory:  mem,
		opts:    opts,
		users:   make(map[string]*userState),
	}
}

func (o *Orchestrator) state(userID string) *userState {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, ok := o.users[userID]
	if !ok {
		st = &userState{}
		o.users[userID] = st
	}
	return st
}

// Respond runs the cascade for one message and records the exchange in
// conversation memory. It never panics outward; an internal failure is
// reported as ErrInternal with no partial result.
func (o *Orchestrator) Respond(ctx context.Context, userID, message string, history []ChatTurn) (res Result, err error) {
	if isBlank(message) {
		return Result{}, ErrEmptyMessage
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("respond: recovered from panic for user %s: %v", userID, r)
			res = Result{}
			err = ErrInternal
		}
	}()

	st := o.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	crisisRes := o.crisis.Assess(message, &st.crisisHist)
	emotionRes := o.emotion.Assess(message, &st.emotionHist)

	if crisisRes.Level == classify.LevelHigh || crisisRes.Level == classify.LevelImmediate {
		log.Printf("respond: crisis protocol engaged for user %s (level=%s confidence=%.2f)", userID, crisisRes.Level, crisisRes.Confidence)
		res = o.finish(CrisisResponse(crisisRes), SourceCrisisProtocol, emotionRes, crisisRes)
		res.QualityScore = 1.0
		o.remember(userID, message, res)
		return res, nil
	}

	reply, source := o.cascade(ctx, message, history, emotionRes, crisisRes)
	res = o.finish(reply, source, emotionRes, crisisRes)
	o.remember(userID, message, res)
	return res, nil
}

// finish assembles a Result, scoring the reply and deriving the
// appropriateness flags from the same vocabularies the score uses.
func (o *Orchestrator) finish(reply, source string, emotionRes classify.EmotionAssessment, crisisRes classify.CrisisAssessment) Result {
	return Result{
		Message:            reply,
		Source:             source,
		QualityScore:       ScoreQuality(reply, emotionRes.Primary, crisisRes.Level),
		EmotionAppropriate: EmotionAppropriate(strings.ToLower(reply), emotionRes.Primary),
		CrisisAppropriate:  CrisisAppropriate(reply, crisisRes.Level),
		Crisis:             crisisRes,
		Emotion:            emotionRes,
		Timestamp:          time.Now().UTC(),
	}
}

// cascade tries each response source in order and reports which one served.
// Corpus and fallback replies pass through verbatim; only generated text is
// post-processed.
func (o *Orchestrator) cascade(ctx context.Context, message string, history []ChatTurn, emotionRes classify.EmotionAssessment, crisisRes classify.CrisisAssessment) (string, string) {
	if match, ok := o.matcher.BestMatch(message, string(emotionRes.Primary), matchThreshold); ok {
		return match.Response, SourceCorpus
	}

	if o.gen != nil {
		genCtx, cancel := context.WithTimeout(ctx, o.opts.GenTimeout)
		defer cancel()
		reply, genErr := o.gen.Complete(genCtx, GenerationRequest{
			Model:            o.opts.Model,
			Messages:         BuildMessages(message, history, emotionRes, crisisRes),
			Temperature:      generationTemp,
			MaxTokens:        o.opts.MaxTokens,
			PresencePenalty:  0.1,
			FrequencyPenalty: 0.1,
		})
		if genErr == nil && !isBlank(reply) {
			return PostProcess(reply, emotionRes.Primary), SourceGenerated
		}
		if genErr != nil {
			log.Printf("respond: generation failed, falling back: %v", genErr)
		}
	}

	if match, ok := o.matcher.BestMatch(message, string(emotionRes.Primary), retryThreshold); ok {
		return match.Response, SourceFallback
	}

	return o.pool.Pick(emotionRes.Primary, emotionRes.Intensity), SourceFallback
}

func (o *Orchestrator) remember(userID, message string, res Result) {
	if o.memory == nil {
		return
	}
	o.memory.Append(userID, memory.Turn{
		At:          res.Timestamp,
		UserMessage: message,
		Response:    res.Message,
		Emotion:     res.Emotion,
		Crisis:      res.Crisis,
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

package respond

import (
	"math/rand"
	"sync"
	"time"

	"justwe/backend/internal/classify"
)

// fallbackTemplates is the static per-emotion, per-intensity response pool
// used when both the corpus and the generation collaborator come up empty.
var fallbackTemplates = map[classify.Emotion]map[classify.Intensity][]string{
	classify.EmotionAnxious: {
		classify.IntensityHigh: {
			"I can sense you're experiencing intense anxiety right now. Let's take a moment together - try inhaling for 4 counts, holding for 4, then exhaling for 4. How does that feel? 😟",
			"I hear how overwhelming this anxiety feels. One grounding trick: name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, and 1 you can taste. 😟",
		},
		classify.IntensityMedium: {
			"Anxiety can be really overwhelming. Remember, it's okay to feel this way. Would you like to share what's making you feel anxious? 😟",
			"I can sense you're feeling anxious right now. That's completely okay. Let's take a few deep breaths together - how does that feel? 😟",
		},
		classify.IntensityLow: {
			"I notice you're feeling a bit anxious. That's completely normal. Would you like to share what's on your mind? 😟",
			"It's okay to feel anxious sometimes. Taking a few deep breaths can help. How are you feeling right now? 😟",
		},
	},
	classify.EmotionSad: {
		classify.IntensityHigh: {
			"I'm so sorry you're feeling this deeply sad right now. Your feelings are completely valid, and it's okay to not be okay. Would you like to talk about what's on your mind? 😢",
			"This sadness feels really heavy for you right now. You're not alone in feeling this way - I'm here to listen. 😢",
		},
		classify.IntensityMedium: {
			"I'm so sorry you're feeling sad right now. Your feelings are valid, and it's okay to not be okay. Would you like to talk about what's on your mind? 😢",
			"Sadness can feel really heavy and isolating. Sometimes expressing our feelings helps lighten the load a little. I'm here to listen. 😢",
		},
		classify.IntensityLow: {
			"It's okay to feel sad sometimes. Your feelings are valid. Would you like to talk about what's on your mind? 😢",
			"Sometimes just talking about our feelings can help. I'm here to listen. 😢",
		},
	},
	classify.EmotionAngry: {
		classify.IntensityHigh: {
			"I can hear how intense this anger feels for you right now. It's completely okay to feel angry - it's a normal emotion. Would you like to talk about what's making you feel this way? 😠",
			"Your anger is really strong right now, and that's okay. Sometimes finding healthy ways to express it can help. What's going on? 😠",
		},
		classify.IntensityMedium: {
			"I can hear how angry and frustrated you're feeling. It's completely okay to feel this way. Would you like to talk about what's making you feel this way? 😠",
			"Your anger is valid. Sometimes talking about what's bothering us helps us process these feelings. 😠",
		},
		classify.IntensityLow: {
			"It's okay to feel irritated or frustrated. Would you like to talk about what's bothering you? 😠",
			"Sometimes talking about our frustrations can help. I'm here to listen. 😠",
		},
	},
	classify.EmotionStressed: {
		classify.IntensityHigh: {
			"I can hear how overwhelmed and stressed you're feeling. Sometimes breaking things down into smaller steps can help. What's one small thing you could do right now? 😣",
			"You're dealing with a lot right now, and that stress is completely valid. It's okay to ask for help and take things one step at a time. 😣",
		},
		classify.IntensityMedium: {
			"Stress can feel like everything is piling up at once. It's okay to feel this way. What's one small thing that might help you feel a little better? 😣",
			"I can hear how stressed you're feeling. Even a few minutes of deep breathing can help reset our nervous system. 😣",
		},
		classify.IntensityLow: {
			"It's normal to feel stressed sometimes. Would you like to talk about what's on your mind? 😣",
			"Sometimes talking about our stress can help us feel better. I'm here to listen. 😣",
		},
	},
	classify.EmotionLonely: {
		classify.IntensityHigh: {
			"Loneliness can be one of the hardest feelings to sit with, especially when it feels this intense. Is there someone you could reach out to, even just to say hello? 🤗",
			"I hear how deeply lonely you're feeling right now. You're not alone in feeling this way - I'm here, and your feelings matter. 🤗",
		},
		classify.IntensityMedium: {
			"Loneliness can be really hard to sit with. Sometimes reaching out to someone we trust, even just to say hello, can help. Is there someone you could reach out to? 🤗",
			"I hear how lonely you're feeling. Many people experience loneliness, even when surrounded by others. I'm here to listen. 🤗",
		},
		classify.IntensityLow: {
			"It's okay to feel lonely sometimes. Would you like to talk about what's on your mind? 🤗",
			"Sometimes talking about our feelings can help us feel less alone. I'm here to listen. 🤗",
		},
	},
	classify.EmotionHappy: {
		classify.IntensityHigh: {
			"I'm so glad you're feeling this happy! What's contributing to this good feeling? 🌞",
			"Your joy is contagious! How can we build on this good energy? 🌞",
		},
		classify.IntensityMedium: {
			"It's great to see you in a positive mood! What's contributing to this good feeling? 😊",
			"I'm glad you're feeling good. What's on your mind? 😊",
		},
		classify.IntensityLow: {
			"It's good to see you feeling okay. How are things going? 😊",
			"It's nice to see you in a good mood. How can I support you today? 😊",
		},
	},
	classify.EmotionConfused: {
		classify.IntensityHigh: {
			"I can hear how confused and uncertain you're feeling right now. Sometimes just talking through our thoughts can help clarify them. What's on your mind? 🤔",
			"Confusion can feel overwhelming when it's this intense. It's okay to not have all the answers right now. 🤔",
		},
		classify.IntensityMedium: {
			"It sounds like you're feeling uncertain about things right now. Would you like to talk through what's on your mind? 🤔",
			"It's okay for things to feel unclear. Sometimes talking them out helps us sort through our thoughts. 🤔",
		},
		classify.IntensityLow: {
			"It's okay to feel uncertain sometimes. Would you like to talk about what's on your mind? 🤔",
			"Sometimes talking through our thoughts can help clarify them. I'm here to listen. 🤔",
		},
	},
}

var genericFallbacks = []string{
	"I'm here to listen and support you. Sometimes just talking about what's on our minds can help us feel a little better. Would you like to share what's going on? 💚",
	"I hear you, and I want you to know that your feelings are valid. It's okay to not be okay sometimes. I'm here to listen whenever you're ready to talk. 💚",
	"Thank you for reaching out. Sometimes the bravest thing we can do is ask for support. I'm here to listen and support you however I can. 💚",
}

// TemplatePool selects fallback responses. The randomness source is injected
// so tests can pin the selection.
type TemplatePool struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewTemplatePool(rng *rand.Rand) *TemplatePool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TemplatePool{rng: rng}
}

// Pick returns a template for the emotion and intensity, degrading to the
// emotion's medium pool and then to the generic pool.
func (p *TemplatePool) Pick(emotion classify.Emotion, intensity classify.Intensity) string {
	pool := genericFallbacks
	if byIntensity, ok := fallbackTemplates[emotion]; ok {
		if templates, ok := byIntensity[intensity]; ok && len(templates) > 0 {
			pool = templates
		} else if templates, ok := byIntensity[classify.IntensityMedium]; ok && len(templates) > 0 {
			pool = templates
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.rng.Intn(len(pool))]
}

package classify

// Hotline is a single crisis contact channel.
type Hotline struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ResourceBundle is the static guidance attached to a crisis assessment.
// Bundles are configuration, never computed or fetched.
type ResourceBundle struct {
	Hotlines           []Hotline `json:"hotlines"`
	RecommendedActions []string  `json:"recommended_actions"`
	WarningSigns       []string  `json:"warning_signs,omitempty"`
}

var (
	crisisHotlines = []Hotline{
		{Name: "988 Suicide & Crisis Lifeline", Contact: "988"},
		{Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
		{Name: "Emergency Services", Contact: "911"},
	}

	urgentWarningSigns = []string{
		"Talking about wanting to die",
		"Looking for ways to kill themselves",
		"Talking about feeling hopeless",
		"Talking about being a burden",
		"Withdrawing or feeling isolated",
		"Sleeping too little or too much",
	}

	resourcesByLevel = map[CrisisLevel]ResourceBundle{
		LevelImmediate: {
			Hotlines: crisisHotlines,
			RecommendedActions: []string{
				"Stay with the person if possible",
				"Remove any means of self-harm",
				"Call emergency services if immediate danger",
				"Contact a crisis hotline",
			},
			WarningSigns: urgentWarningSigns,
		},
		LevelHigh: {
			Hotlines: crisisHotlines,
			RecommendedActions: []string{
				"Contact a crisis hotline",
				"Reach out to someone you trust",
				"Connect with a mental health professional",
			},
			WarningSigns: urgentWarningSigns,
		},
		LevelMedium: {
			Hotlines: crisisHotlines,
			RecommendedActions: []string{
				"Talk to a trusted friend or family member",
				"Consider speaking with a mental health professional",
				"Call a helpline to talk to someone trained to help",
			},
		},
		LevelLow: {
			Hotlines: []Hotline{
				{Name: "988 Suicide & Crisis Lifeline", Contact: "988"},
			},
			RecommendedActions: []string{
				"Practice deep breathing exercises",
				"Try journaling your thoughts and feelings",
				"Take a walk or get some rest",
			},
		},
		LevelNone: {},
	}
)

// ResourcesFor returns the guidance bundle for a crisis level.
func ResourcesFor(level CrisisLevel) ResourceBundle {
	return resourcesByLevel[level]
}

var copingByEmotion = map[Emotion][]string{
	EmotionAnxious: {
		"Try box breathing: inhale 4, hold 4, exhale 4, hold 4",
		"Ground yourself: name 5 things you can see and 4 you can touch",
		"Step away from screens for ten minutes",
	},
	EmotionSad: {
		"Write down what you're feeling without judging it",
		"Reach out to someone who usually makes you feel heard",
		"Do one small kind thing for yourself today",
	},
	EmotionAngry: {
		"Take a brisk walk before responding to anyone",
		"Write the angry message, then delete it",
		"Try slow counted breathing until the heat fades",
	},
	EmotionStressed: {
		"List your tasks and pick the single smallest one",
		"Take a five minute break away from the problem",
		"Say no to one thing this week",
	},
	EmotionLonely: {
		"Message one person you haven't talked to in a while",
		"Spend time in a public place, even without talking",
		"Join a group activity around something you enjoy",
	},
	EmotionHappy: {
		"Note what made today good so you can come back to it",
		"Share the good news with someone",
	},
	EmotionConfused: {
		"Write the decision down as a plain question",
		"List what you know versus what you're guessing",
		"Talk it through out loud, even to yourself",
	},
}

// CopingFor returns the coping suggestions for an emotion; nil for neutral
// and unknown emotions.
func CopingFor(emotion Emotion) []string {
	return copingByEmotion[emotion]
}

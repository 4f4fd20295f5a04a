package classify

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed rules/crisis.yaml
var crisisRulesYAML []byte

//go:embed rules/emotions.yaml
var emotionRulesYAML []byte

// crisisTier is one severity band of the crisis rule table, ordered most
// severe first after loading.
type crisisTier struct {
	Level    CrisisLevel
	Norm     float64
	Patterns []*regexp.Regexp
}

type crisisRuleFile struct {
	Tiers []struct {
		Level    string   `yaml:"level"`
		Norm     float64  `yaml:"norm"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"tiers"`
}

// emotionRules holds the three intensity-tiered pattern sets for one emotion.
type emotionRules struct {
	Emotion Emotion
	Tiers   map[Intensity][]*regexp.Regexp
}

type emotionRuleFile struct {
	Order    []string                       `yaml:"order"`
	Emotions map[string]map[string][]string `yaml:"emotions"`
}

var emotionTierOrder = []Intensity{IntensityHigh, IntensityMedium, IntensityLow}

func compilePatterns(sources []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", src, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func loadCrisisTiers(raw []byte) ([]crisisTier, error) {
	var file crisisRuleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse crisis rules: %w", err)
	}
	if len(file.Tiers) == 0 {
		return nil, fmt.Errorf("crisis rule table is empty")
	}

	tiers := make([]crisisTier, 0, len(file.Tiers))
	for _, t := range file.Tiers {
		level := CrisisLevel(t.Level)
		if _, ok := crisisLevelRank[level]; !ok || level == LevelNone {
			return nil, fmt.Errorf("unknown crisis tier level %q", t.Level)
		}
		if t.Norm <= 0 {
			return nil, fmt.Errorf("crisis tier %q needs a positive norm", t.Level)
		}
		patterns, err := compilePatterns(t.Patterns)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, crisisTier{Level: level, Norm: t.Norm, Patterns: patterns})
	}

	// The table must be declared most severe first; tier selection depends on it.
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Level.Rank() >= tiers[i-1].Level.Rank() {
			return nil, fmt.Errorf("crisis tiers must be ordered by descending severity")
		}
	}
	return tiers, nil
}

func loadEmotionRules(raw []byte) ([]emotionRules, error) {
	var file emotionRuleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse emotion rules: %w", err)
	}
	if len(file.Order) == 0 {
		return nil, fmt.Errorf("emotion rule table needs a canonical order")
	}

	rules := make([]emotionRules, 0, len(file.Order))
	for _, name := range file.Order {
		tiers, ok := file.Emotions[name]
		if !ok {
			return nil, fmt.Errorf("emotion %q listed in order but has no rules", name)
		}
		er := emotionRules{Emotion: Emotion(name), Tiers: make(map[Intensity][]*regexp.Regexp, 3)}
		for _, intensity := range emotionTierOrder {
			compiled, err := compilePatterns(tiers[string(intensity)])
			if err != nil {
				return nil, fmt.Errorf("emotion %q: %w", name, err)
			}
			er.Tiers[intensity] = compiled
		}
		rules = append(rules, er)
	}
	return rules, nil
}

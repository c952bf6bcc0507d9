package content

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Activity types form a closed set; the catalog loader rejects anything else
// so a typo in authored content fails at boot instead of at render time.
const (
	TypeIntroduction         = "introduction"
	TypeVocabularyTable      = "vocabulary-table"
	TypeDialogue             = "dialogue"
	TypeMatching             = "matching"
	TypeConversationPractice = "conversation-practice"
	TypeQuiz                 = "quiz"
)

var validActivityTypes = map[string]bool{
	TypeIntroduction:         true,
	TypeVocabularyTable:      true,
	TypeDialogue:             true,
	TypeMatching:             true,
	TypeConversationPractice: true,
	TypeQuiz:                 true,
}

func IsValidActivityType(t string) bool {
	return validActivityTypes[t]
}

type ActivityDef struct {
	ExternalID   string         `yaml:"id"`
	ContentRef   string         `yaml:"content_ref,omitempty"`
	Type         string         `yaml:"type"`
	ComponentKey string         `yaml:"component_key,omitempty"`
	OrderIndex   int            `yaml:"order"`
	Title        string         `yaml:"title,omitempty"`
	Payload      map[string]any `yaml:"payload,omitempty"`
}

type UnitDef struct {
	ExternalID   string        `yaml:"id"`
	Title        string        `yaml:"title"`
	DisplayOrder int           `yaml:"order"`
	Activities   []ActivityDef `yaml:"activities"`
}

type Catalog struct {
	Units []UnitDef `yaml:"units"`
}

// Load parses and validates the embedded catalog. Duplicate ids or unknown
// activity types are authoring errors and fail loudly.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse content catalog: %w", err)
	}
	seenUnits := map[string]bool{}
	seenActivities := map[string]bool{}
	for ui := range c.Units {
		u := &c.Units[ui]
		u.ExternalID = strings.TrimSpace(u.ExternalID)
		if u.ExternalID == "" {
			return nil, fmt.Errorf("content catalog: unit %d has no id", ui)
		}
		if seenUnits[u.ExternalID] {
			return nil, fmt.Errorf("content catalog: duplicate unit id %q", u.ExternalID)
		}
		seenUnits[u.ExternalID] = true
		for ai := range u.Activities {
			a := &u.Activities[ai]
			a.ExternalID = strings.TrimSpace(a.ExternalID)
			if a.ExternalID == "" {
				return nil, fmt.Errorf("content catalog: unit %q activity %d has no id", u.ExternalID, ai)
			}
			if seenActivities[a.ExternalID] {
				return nil, fmt.Errorf("content catalog: duplicate activity id %q", a.ExternalID)
			}
			seenActivities[a.ExternalID] = true
			if !IsValidActivityType(a.Type) {
				return nil, fmt.Errorf("content catalog: activity %q has unknown type %q", a.ExternalID, a.Type)
			}
		}
	}
	return &c, nil
}

package content

import "testing"

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Units) == 0 {
		t.Fatalf("catalog has no units")
	}

	seen := map[string]bool{}
	for _, u := range c.Units {
		if u.ExternalID == "" {
			t.Fatalf("unit with empty id")
		}
		if len(u.Activities) == 0 {
			t.Fatalf("unit %q has no activities", u.ExternalID)
		}
		for _, a := range u.Activities {
			if seen[a.ExternalID] {
				t.Fatalf("duplicate activity id %q", a.ExternalID)
			}
			seen[a.ExternalID] = true
			if !IsValidActivityType(a.Type) {
				t.Fatalf("activity %q has invalid type %q", a.ExternalID, a.Type)
			}
		}
	}
}

func TestIsValidActivityType(t *testing.T) {
	for _, typ := range []string{
		TypeIntroduction, TypeVocabularyTable, TypeDialogue,
		TypeMatching, TypeConversationPractice, TypeQuiz,
	} {
		if !IsValidActivityType(typ) {
			t.Fatalf("%q should be valid", typ)
		}
	}
	if IsValidActivityType("flashcards") {
		t.Fatalf("unknown type should be invalid")
	}
}

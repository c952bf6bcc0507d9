package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewResolver(c)
}

func TestResolveByExternalID(t *testing.T) {
	r := testResolver(t)

	out, ok := r.Resolve("act-greet-quiz", nil)
	if !ok {
		t.Fatalf("expected a catalog hit")
	}
	if out.Type != TypeQuiz {
		t.Fatalf("type: want=%s got=%s", TypeQuiz, out.Type)
	}
	if out.UnitExternalID != "unit-greetings" {
		t.Fatalf("unit: want=unit-greetings got=%s", out.UnitExternalID)
	}
	if len(out.Payload) == 0 {
		t.Fatalf("quiz payload should not be empty")
	}
}

func TestResolveByContentRef(t *testing.T) {
	r := testResolver(t)

	out, ok := r.Resolve("dlg-cafe-order", nil)
	if !ok {
		t.Fatalf("expected a hit via content_ref")
	}
	if out.ExternalID != "act-cafe-dialogue" {
		t.Fatalf("external id: want=act-cafe-dialogue got=%s", out.ExternalID)
	}
	if out.Type != TypeDialogue {
		t.Fatalf("type: want=%s got=%s", TypeDialogue, out.Type)
	}
}

func TestResolveUnknownID(t *testing.T) {
	r := testResolver(t)
	if _, ok := r.Resolve("act-nope", nil); ok {
		t.Fatalf("unknown id should miss")
	}
	if _, ok := r.Resolve("", nil); ok {
		t.Fatalf("empty id should miss")
	}
}

func TestResolveCatalogWinsOverRuntime(t *testing.T) {
	r := testResolver(t)

	runtime := &types.Activity{
		ID:           uuid.New(),
		ExternalID:   "act-greet-quiz",
		Type:         "introduction",
		ComponentKey: "SomethingElse",
		Title:        "Overridden title",
	}
	out, ok := r.Resolve("act-greet-quiz", runtime)
	if !ok {
		t.Fatalf("expected a hit")
	}
	// The authored catalog is the source of truth; runtime rows only fill
	// blanks.
	if out.Type != TypeQuiz {
		t.Fatalf("catalog type must win, got %s", out.Type)
	}
	if out.Title != "Greetings check" {
		t.Fatalf("catalog title must win, got %q", out.Title)
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
)

func newProgressServiceForTest(t *testing.T) (ProgressService, *gorm.DB, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewProgressService(
		tx,
		log,
		repos.NewUnitRepo(tx, log),
		repos.NewActivityRepo(tx, log),
		repos.NewUnitProgressRepo(tx, log),
		repos.NewActivityCompletionRepo(tx, log),
		repos.NewPracticeEventRepo(tx, log),
		nil,
	)
	return svc, tx, context.Background()
}

func TestRecordActivityEventCompleteIsIdempotent(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	_, acts := testutil.SeedUnitWithActivities(t, ctx, tx, "unit-idem", 1, 3)
	userID := uuid.New()

	in := ActivityEventInput{
		UserID:             userID,
		ActivityExternalID: acts[0].ExternalID,
		Kind:               EventComplete,
	}

	first, err := svc.RecordActivityEvent(ctx, in)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if !first.FirstCompletion {
		t.Fatalf("first complete should be the first completion")
	}
	if first.Progress == nil || first.Progress.CompletedActivityCount != 1 {
		t.Fatalf("progress after first complete: %+v", first.Progress)
	}

	second, err := svc.RecordActivityEvent(ctx, in)
	if err != nil {
		t.Fatalf("replayed complete: %v", err)
	}
	if second.FirstCompletion {
		t.Fatalf("replayed complete must not count again")
	}
	if second.Progress == nil || second.Progress.CompletedActivityCount != 1 {
		t.Fatalf("progress after replay: %+v", second.Progress)
	}
}

func TestRecordActivityEventCompletesUnit(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	_, acts := testutil.SeedUnitWithActivities(t, ctx, tx, "unit-finish", 1, 2)
	userID := uuid.New()

	for _, a := range acts {
		out, err := svc.RecordActivityEvent(ctx, ActivityEventInput{
			UserID:             userID,
			ActivityExternalID: a.ExternalID,
			Kind:               EventComplete,
		})
		if err != nil {
			t.Fatalf("complete %s: %v", a.ExternalID, err)
		}
		if !out.FirstCompletion {
			t.Fatalf("complete %s should be first", a.ExternalID)
		}
	}

	progress, err := svc.GetProgress(ctx, userID, "unit-finish")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if !progress.IsCompleted() {
		t.Fatalf("unit should be complete: %+v", progress)
	}
}

func TestRecordActivityEventStartDoesNotTouchProgress(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit, acts := testutil.SeedUnitWithActivities(t, ctx, tx, "unit-start", 1, 2)
	userID := uuid.New()

	out, err := svc.RecordActivityEvent(ctx, ActivityEventInput{
		UserID:             userID,
		ActivityExternalID: acts[0].ExternalID,
		Kind:               EventStart,
	})
	if err != nil {
		t.Fatalf("start event: %v", err)
	}
	if !out.Recorded || out.FirstCompletion || out.Progress != nil {
		t.Fatalf("unexpected result for start event: %+v", out)
	}

	progress, err := svc.GetProgress(ctx, userID, unit.ExternalID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress.CompletedActivityCount != 0 {
		t.Fatalf("start event must not move the counter: %+v", progress)
	}
}

func TestRecordActivityEventUnknownActivity(t *testing.T) {
	svc, _, ctx := newProgressServiceForTest(t)

	_, err := svc.RecordActivityEvent(ctx, ActivityEventInput{
		UserID:             uuid.New(),
		ActivityExternalID: "act-does-not-exist",
		Kind:               EventComplete,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecordActivityEventRejectsUnknownKind(t *testing.T) {
	svc, _, ctx := newProgressServiceForTest(t)

	_, err := svc.RecordActivityEvent(ctx, ActivityEventInput{
		UserID:             uuid.New(),
		ActivityExternalID: "whatever",
		Kind:               "finish",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestUpsertUnitProgressIsMonotonic(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit := testutil.SeedUnit(t, ctx, tx, "unit-coarse", 1, 5)
	userID := uuid.New()

	p, err := svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 3, 5)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if p.CompletedActivityCount != 3 {
		t.Fatalf("completed: want=3 got=%d", p.CompletedActivityCount)
	}

	// A stale snapshot never rolls progress back.
	p, err = svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 2, 5)
	if err != nil {
		t.Fatalf("stale upsert: %v", err)
	}
	if p.CompletedActivityCount != 3 {
		t.Fatalf("completed after stale upsert: want=3 got=%d", p.CompletedActivityCount)
	}

	p, err = svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 5, 5)
	if err != nil {
		t.Fatalf("final upsert: %v", err)
	}
	if !p.IsCompleted() {
		t.Fatalf("unit should be complete: %+v", p)
	}
}

func TestUpsertUnitProgressStaleTotalKeepsInvariant(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit := testutil.SeedUnit(t, ctx, tx, "unit-shrink", 1, 10)
	userID := uuid.New()

	p, err := svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 5, 10)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if p.CompletedActivityCount != 5 || p.TotalActivityCount != 10 {
		t.Fatalf("first upsert row: %+v", p)
	}

	// A stale snapshot with a smaller total must not shrink the total below
	// the recorded completed count (and must not flip the unit to complete).
	p, err = svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 2, 3)
	if err != nil {
		t.Fatalf("stale upsert: %v", err)
	}
	if p.CompletedActivityCount > p.TotalActivityCount {
		t.Fatalf("completed exceeds total: %+v", p)
	}
	if p.CompletedActivityCount != 5 || p.TotalActivityCount != 10 {
		t.Fatalf("stale snapshot should be a no-op: %+v", p)
	}
	if p.IsCompleted() {
		t.Fatalf("stale snapshot must not complete the unit: %+v", p)
	}

	// A shrunken total that still covers the completed count is applied.
	p, err = svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 5, 6)
	if err != nil {
		t.Fatalf("valid shrink: %v", err)
	}
	if p.TotalActivityCount != 6 || p.CompletedActivityCount != 5 {
		t.Fatalf("valid shrink row: %+v", p)
	}
}

func TestUpsertUnitProgressValidation(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit := testutil.SeedUnit(t, ctx, tx, "unit-bounds", 1, 4)
	userID := uuid.New()

	if _, err := svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 5, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("out-of-range count: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpsertUnitProgress(ctx, userID, unit.ExternalID, 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero total: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpsertUnitProgress(ctx, uuid.Nil, unit.ExternalID, 1, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing user: want ErrInvalidInput, got %v", err)
	}
}

func TestGetProgressDefaultsToZero(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit := testutil.SeedUnit(t, ctx, tx, "unit-zero", 1, 6)

	p, err := svc.GetProgress(ctx, uuid.New(), unit.ExternalID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if p.CompletedActivityCount != 0 || p.TotalActivityCount != 6 {
		t.Fatalf("zero progress: %+v", p)
	}

	if _, err := svc.GetProgress(ctx, uuid.New(), "unit-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown unit: want ErrNotFound, got %v", err)
	}
}

func TestTouchAccessStampsTimestamp(t *testing.T) {
	svc, tx, ctx := newProgressServiceForTest(t)
	unit := testutil.SeedUnit(t, ctx, tx, "unit-touch", 1, 2)
	userID := uuid.New()

	if err := svc.TouchAccess(ctx, userID, unit.ExternalID); err != nil {
		t.Fatalf("touch access: %v", err)
	}
	p, err := svc.GetProgress(ctx, userID, unit.ExternalID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if p.LastAccessedAt == nil {
		t.Fatalf("last_accessed_at should be set")
	}
}

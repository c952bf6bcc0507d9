package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

func newResumeServiceForTest(t *testing.T) (ResumeService, *gorm.DB, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewResumeService(
		tx,
		log,
		repos.NewUnitRepo(tx, log),
		repos.NewActivityRepo(tx, log),
		repos.NewActivityCompletionRepo(tx, log),
	)
	return svc, tx, context.Background()
}

func markComplete(t *testing.T, ctx context.Context, tx *gorm.DB, userID uuid.UUID, a *types.Activity) {
	t.Helper()
	now := time.Now().UTC()
	err := tx.WithContext(ctx).Create(&types.ActivityCompletion{
		ID:          uuid.New(),
		UserID:      userID,
		ActivityID:  a.ID,
		UnitID:      a.UnitID,
		CompletedAt: now,
		CreatedAt:   now,
	}).Error
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
}

func TestResumeTargetPicksFirstOpenActivity(t *testing.T) {
	svc, tx, ctx := newResumeServiceForTest(t)
	_, acts1 := testutil.SeedUnitWithActivities(t, ctx, tx, "res-unit-1", 1, 3)
	testutil.SeedUnitWithActivities(t, ctx, tx, "res-unit-2", 2, 2)
	userID := uuid.New()

	markComplete(t, ctx, tx, userID, acts1[0])

	target, err := svc.ResumeTarget(ctx, tx, userID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if target == nil {
		t.Fatalf("expected a target")
	}
	if target.ActivityExternalID != acts1[1].ExternalID {
		t.Fatalf("target activity: want=%s got=%s", acts1[1].ExternalID, target.ActivityExternalID)
	}
	if target.ReviewMode {
		t.Fatalf("review mode should be off while work remains")
	}
}

func TestResumeTargetSkipsFinishedUnits(t *testing.T) {
	svc, tx, ctx := newResumeServiceForTest(t)
	_, acts1 := testutil.SeedUnitWithActivities(t, ctx, tx, "res-skip-1", 1, 2)
	unit2, acts2 := testutil.SeedUnitWithActivities(t, ctx, tx, "res-skip-2", 2, 2)
	userID := uuid.New()

	for _, a := range acts1 {
		markComplete(t, ctx, tx, userID, a)
	}

	target, err := svc.ResumeTarget(ctx, tx, userID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if target == nil || target.UnitExternalID != unit2.ExternalID {
		t.Fatalf("should land on the second unit, got %+v", target)
	}
	if target.ActivityExternalID != acts2[0].ExternalID {
		t.Fatalf("target activity: want=%s got=%s", acts2[0].ExternalID, target.ActivityExternalID)
	}
}

func TestResumeTargetFallsBackToReviewMode(t *testing.T) {
	svc, tx, ctx := newResumeServiceForTest(t)
	_, acts1 := testutil.SeedUnitWithActivities(t, ctx, tx, "res-done-1", 1, 1)
	last, acts2 := testutil.SeedUnitWithActivities(t, ctx, tx, "res-done-2", 2, 2)
	userID := uuid.New()

	markComplete(t, ctx, tx, userID, acts1[0])
	for _, a := range acts2 {
		markComplete(t, ctx, tx, userID, a)
	}

	target, err := svc.ResumeTarget(ctx, tx, userID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if target == nil {
		t.Fatalf("a finished learner still gets a target")
	}
	if !target.ReviewMode {
		t.Fatalf("expected review mode, got %+v", target)
	}
	if target.UnitExternalID != last.ExternalID || target.ActivityExternalID != acts2[0].ExternalID {
		t.Fatalf("review target should be the last unit's first activity, got %+v", target)
	}
}

func TestResumeTargetWithNoUnits(t *testing.T) {
	svc, tx, ctx := newResumeServiceForTest(t)

	target, err := svc.ResumeTarget(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if target != nil {
		t.Fatalf("no units means no target, got %+v", target)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
)

func TestUnitListWithProgress(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	unitRepo := repos.NewUnitRepo(tx, log)
	progressRepo := repos.NewUnitProgressRepo(tx, log)
	svc := NewUnitService(tx, log, unitRepo, progressRepo)

	first := testutil.SeedUnit(t, ctx, tx, "list-unit-1", 1, 4)
	second := testutil.SeedUnit(t, ctx, tx, "list-unit-2", 2, 2)
	userID := uuid.New()

	if err := progressRepo.EnsureRow(ctx, tx, userID, first.ID, 4); err != nil {
		t.Fatalf("ensure row: %v", err)
	}
	if _, err := progressRepo.RaiseCompleted(ctx, tx, userID, first.ID, 2); err != nil {
		t.Fatalf("raise completed: %v", err)
	}

	out, err := svc.ListWithProgress(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("units: want=2 got=%d", len(out))
	}
	if out[0].ExternalID != first.ExternalID || out[1].ExternalID != second.ExternalID {
		t.Fatalf("units out of order: %s, %s", out[0].ExternalID, out[1].ExternalID)
	}
	if out[0].CompletedActivityCount != 2 || out[0].PercentComplete != 50 {
		t.Fatalf("first unit progress: %+v", out[0])
	}
	if out[1].CompletedActivityCount != 0 || out[1].PercentComplete != 0 || out[1].IsCompleted {
		t.Fatalf("untouched unit should be zeroed: %+v", out[1])
	}
}

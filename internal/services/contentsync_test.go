package services

import (
	"context"
	"testing"

	"github.com/yungbote/linguabridge-backend/internal/content"
	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
)

func TestContentSyncIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	catalog, err := content.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	unitRepo := repos.NewUnitRepo(tx, log)
	activityRepo := repos.NewActivityRepo(tx, log)
	svc := NewContentSyncService(tx, log, catalog, unitRepo, activityRepo)

	if err := svc.Sync(ctx); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	units, err := unitRepo.GetAllOrdered(ctx, tx)
	if err != nil {
		t.Fatalf("load units: %v", err)
	}
	if len(units) != len(catalog.Units) {
		t.Fatalf("units: want=%d got=%d", len(catalog.Units), len(units))
	}
	firstID := units[0].ID

	// A second sync updates in place instead of duplicating rows.
	if err := svc.Sync(ctx); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	units, err = unitRepo.GetAllOrdered(ctx, tx)
	if err != nil {
		t.Fatalf("reload units: %v", err)
	}
	if len(units) != len(catalog.Units) {
		t.Fatalf("units after resync: want=%d got=%d", len(catalog.Units), len(units))
	}
	if units[0].ID != firstID {
		t.Fatalf("resync must keep stable unit ids")
	}

	activities, err := activityRepo.GetByUnitIDOrdered(ctx, tx, units[0].ID)
	if err != nil {
		t.Fatalf("load activities: %v", err)
	}
	if len(activities) != len(catalog.Units[0].Activities) {
		t.Fatalf("activities: want=%d got=%d", len(catalog.Units[0].Activities), len(activities))
	}
	if units[0].TotalActivityCount != len(activities) {
		t.Fatalf("unit total should match activity count: %d vs %d", units[0].TotalActivityCount, len(activities))
	}
}

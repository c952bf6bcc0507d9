package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/linguabridge-backend/internal/types"
	"gorm.io/gorm"
)

func SeedUnit(tb testing.TB, ctx context.Context, tx *gorm.DB, externalID string, displayOrder, totalActivities int) *types.Unit {
	tb.Helper()
	u := &types.Unit{
		ID:                 uuid.New(),
		ExternalID:         externalID,
		Title:              "Unit " + externalID,
		DisplayOrder:       displayOrder,
		TotalActivityCount: totalActivities,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed unit: %v", err)
	}
	return u
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, unitID uuid.UUID, externalID string, orderIndex int) *types.Activity {
	tb.Helper()
	a := &types.Activity{
		ID:         uuid.New(),
		ExternalID: externalID,
		UnitID:     unitID,
		Type:       "quiz",
		OrderIndex: orderIndex,
		Title:      "Activity " + externalID,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}

// SeedUnitWithActivities creates a unit plus n ordered activities under it.
func SeedUnitWithActivities(tb testing.TB, ctx context.Context, tx *gorm.DB, externalID string, displayOrder, n int) (*types.Unit, []*types.Activity) {
	tb.Helper()
	unit := SeedUnit(tb, ctx, tx, externalID, displayOrder, n)
	acts := make([]*types.Activity, 0, n)
	for i := 0; i < n; i++ {
		acts = append(acts, SeedActivity(tb, ctx, tx, unit.ID, fmt.Sprintf("%s-act-%d", externalID, i+1), i))
	}
	return unit, acts
}

func SeedXP(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, occurredAt time.Time) *types.XPTransaction {
	tb.Helper()
	x := &types.XPTransaction{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     amount,
		SourceType: "activity_completion",
		SourceID:   uuid.NewString(),
		OccurredAt: occurredAt,
	}
	x.DedupeKey = x.SourceType + ":" + x.SourceID
	if err := tx.WithContext(ctx).Create(x).Error; err != nil {
		tb.Fatalf("seed xp: %v", err)
	}
	return x
}

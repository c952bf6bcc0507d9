package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
)

func newXPServiceForTest(t *testing.T) (XPService, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewXPService(tx, log, repos.NewXPTransactionRepo(tx, log), nil)
	return svc, context.Background()
}

func TestXPServiceAwardThenDuplicate(t *testing.T) {
	svc, ctx := newXPServiceForTest(t)
	userID := uuid.New()

	in := AwardInput{
		UserID:     userID,
		Amount:     10,
		SourceType: SourceActivityCompletion,
		SourceID:   "act-greet-quiz",
	}

	first, err := svc.Award(ctx, nil, in)
	if err != nil {
		t.Fatalf("first award: %v", err)
	}
	if !first.Accepted {
		t.Fatalf("first award should be accepted")
	}
	if first.NewTotal != 10 {
		t.Fatalf("first total: want=10 got=%d", first.NewTotal)
	}

	second, err := svc.Award(ctx, nil, in)
	if err != nil {
		t.Fatalf("second award: %v", err)
	}
	if second.Accepted {
		t.Fatalf("replayed award should not be accepted")
	}
	if second.NewTotal != 10 {
		t.Fatalf("total after replay: want=10 got=%d", second.NewTotal)
	}
}

func TestXPServiceAwardDifferentSourcesAccumulate(t *testing.T) {
	svc, ctx := newXPServiceForTest(t)
	userID := uuid.New()

	awards := []AwardInput{
		{UserID: userID, Amount: 10, SourceType: SourceActivityCompletion, SourceID: "a-1"},
		{UserID: userID, Amount: 50, SourceType: SourceUnitCompletion, SourceID: "u-1"},
		{UserID: userID, Amount: 5, SourceType: SourceDailyStreak, SourceID: "2026-08-30"},
	}
	var last AwardResult
	for _, in := range awards {
		out, err := svc.Award(ctx, nil, in)
		if err != nil {
			t.Fatalf("award %s/%s: %v", in.SourceType, in.SourceID, err)
		}
		if !out.Accepted {
			t.Fatalf("award %s/%s should be accepted", in.SourceType, in.SourceID)
		}
		last = out
	}
	if last.NewTotal != 65 {
		t.Fatalf("total: want=65 got=%d", last.NewTotal)
	}
}

func TestXPServiceSkipDuplicateCheck(t *testing.T) {
	svc, ctx := newXPServiceForTest(t)
	userID := uuid.New()

	in := AwardInput{
		UserID:             userID,
		Amount:             25,
		SourceType:         SourceManualAdjustment,
		SourceID:           "support-ticket-812",
		SkipDuplicateCheck: true,
	}
	for i := 0; i < 2; i++ {
		out, err := svc.Award(ctx, nil, in)
		if err != nil {
			t.Fatalf("award %d: %v", i, err)
		}
		if !out.Accepted {
			t.Fatalf("award %d should bypass the duplicate check", i)
		}
	}
	total, err := svc.Total(ctx, nil, userID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 50 {
		t.Fatalf("total: want=50 got=%d", total)
	}
}

func TestXPServiceAwardRejectsBadInput(t *testing.T) {
	svc, ctx := newXPServiceForTest(t)
	userID := uuid.New()

	cases := []struct {
		name string
		in   AwardInput
	}{
		{"missing user", AwardInput{Amount: 10, SourceType: SourceActivityCompletion, SourceID: "x"}},
		{"zero amount", AwardInput{UserID: userID, Amount: 0, SourceType: SourceActivityCompletion, SourceID: "x"}},
		{"negative amount", AwardInput{UserID: userID, Amount: -5, SourceType: SourceActivityCompletion, SourceID: "x"}},
		{"unknown source type", AwardInput{UserID: userID, Amount: 10, SourceType: "cheat_code", SourceID: "x"}},
		{"missing source id", AwardInput{UserID: userID, Amount: 10, SourceType: SourceActivityCompletion}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Award(ctx, nil, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestXPServiceTotalForUnknownUserIsZero(t *testing.T) {
	svc, ctx := newXPServiceForTest(t)
	total, err := svc.Total(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Fatalf("total: want=0 got=%d", total)
	}
}

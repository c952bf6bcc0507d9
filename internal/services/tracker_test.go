package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/repos/testutil"
)

// memoryCache is an in-process stand-in for the redis summary cache.
type memoryCache struct {
	mu   sync.Mutex
	data map[uuid.UUID]*TrackerSummary

	gets, sets, invalidations int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[uuid.UUID]*TrackerSummary{}}
}

func (c *memoryCache) GetSummary(ctx context.Context, userID uuid.UUID) (*TrackerSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	s, ok := c.data[userID]
	return s, ok
}

func (c *memoryCache) SetSummary(ctx context.Context, userID uuid.UUID, s *TrackerSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[userID] = s
}

func (c *memoryCache) InvalidateSummary(ctx context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	delete(c.data, userID)
}

func newTrackerForTest(t *testing.T, cache SummaryCache) (TrackerService, func() (uuid.UUID, context.Context)) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	xpRepo := repos.NewXPTransactionRepo(tx, log)
	svc := NewTrackerService(
		tx,
		log,
		xpRepo,
		NewStreakService(tx, log, xpRepo),
		repos.NewActivityCompletionRepo(tx, log),
		repos.NewUnitProgressRepo(tx, log),
		cache,
	)

	userID := uuid.New()
	ctx := context.Background()
	now := time.Now().UTC()
	testutil.SeedXP(t, ctx, tx, userID, 10, now.Add(-26*time.Hour))
	testutil.SeedXP(t, ctx, tx, userID, 15, now)

	return svc, func() (uuid.UUID, context.Context) { return userID, ctx }
}

func TestTrackerSummaryAggregates(t *testing.T) {
	svc, ids := newTrackerForTest(t, nil)
	userID, ctx := ids()

	out, err := svc.Summary(ctx, userID, 0)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalXP != 25 {
		t.Fatalf("total xp: want=25 got=%d", out.TotalXP)
	}
	if out.StreakDays < 1 {
		t.Fatalf("streak days: want>=1 got=%d", out.StreakDays)
	}
	if !out.TodayCounted {
		t.Fatalf("today should be counted")
	}
}

func TestTrackerSummaryUsesCache(t *testing.T) {
	cache := newMemoryCache()
	svc, ids := newTrackerForTest(t, cache)
	userID, ctx := ids()

	first, err := svc.Summary(ctx, userID, 0)
	if err != nil {
		t.Fatalf("first summary: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets: want=1 got=%d", cache.sets)
	}

	second, err := svc.Summary(ctx, userID, 0)
	if err != nil {
		t.Fatalf("second summary: %v", err)
	}
	if second.TotalXP != first.TotalXP {
		t.Fatalf("cached summary mismatch: %+v vs %+v", second, first)
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit should not recompute, sets=%d", cache.sets)
	}
}

func TestTrackerSummaryStreakFollowsRequestOffset(t *testing.T) {
	cache := newMemoryCache()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	xpRepo := repos.NewXPTransactionRepo(tx, log)
	streaks := NewStreakService(tx, log, xpRepo).(*streakService)
	streaks.now = func() time.Time { return day("2026-08-30 06:00") }

	svc := NewTrackerService(
		tx,
		log,
		xpRepo,
		streaks,
		repos.NewActivityCompletionRepo(tx, log),
		repos.NewUnitProgressRepo(tx, log),
		cache,
	)

	userID := uuid.New()
	ctx := context.Background()
	testutil.SeedXP(t, ctx, tx, userID, 10, day("2026-08-29 18:00"))

	// At UTC+8 the transaction landed on the local 30th, the same local day
	// as "now", so today is counted.
	east, err := svc.Summary(ctx, userID, 8*60)
	if err != nil {
		t.Fatalf("summary UTC+8: %v", err)
	}
	if !east.TodayCounted {
		t.Fatalf("UTC+8: today should be counted")
	}

	// At UTC the same transaction belongs to yesterday. The cached aggregates
	// are shared, but the streak must reflect this request's offset.
	utc, err := svc.Summary(ctx, userID, 0)
	if err != nil {
		t.Fatalf("summary UTC: %v", err)
	}
	if utc.TodayCounted {
		t.Fatalf("UTC: today should not be counted")
	}
	if utc.StreakDays != 1 {
		t.Fatalf("UTC streak days: want=1 got=%d", utc.StreakDays)
	}
	if utc.TotalXP != east.TotalXP {
		t.Fatalf("total xp diverged across offsets: %d vs %d", utc.TotalXP, east.TotalXP)
	}
	if cache.sets != 1 {
		t.Fatalf("aggregates should be cached once, sets=%d", cache.sets)
	}
}

func TestTrackerSummaryRejectsMissingUser(t *testing.T) {
	svc, ids := newTrackerForTest(t, nil)
	_, ctx := ids()

	if _, err := svc.Summary(ctx, uuid.Nil, 0); err == nil {
		t.Fatalf("want error for missing user")
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
)

type TrackerSummary struct {
	UserID              uuid.UUID `json:"user_id"`
	TotalXP             int64     `json:"total_xp"`
	StreakDays          int       `json:"streak_days"`
	LongestStreakDays   int       `json:"longest_streak_days"`
	TodayCounted        bool      `json:"today_counted"`
	LastStreakDate      string    `json:"last_streak_date,omitempty"`
	CompletedActivities int64     `json:"completed_activities"`
	CompletedUnits      int       `json:"completed_units"`
}

// SummaryCache is the optional read-through cache in front of the tracker
// summary. A nil cache is always valid; the engine just recomputes. Cached
// entries hold only the tz-independent aggregates: streak fields depend on
// the caller's tz offset and are recomputed on every read.
type SummaryCache interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*TrackerSummary, bool)
	SetSummary(ctx context.Context, userID uuid.UUID, s *TrackerSummary)
	InvalidateSummary(ctx context.Context, userID uuid.UUID)
}

type TrackerService interface {
	Summary(ctx context.Context, userID uuid.UUID, tzOffsetMinutes int) (*TrackerSummary, error)
}

type trackerService struct {
	db          *gorm.DB
	log         *logger.Logger
	xpRepo      repos.XPTransactionRepo
	streaks     StreakService
	completions repos.ActivityCompletionRepo
	progress    repos.UnitProgressRepo
	cache       SummaryCache
}

func NewTrackerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	xpRepo repos.XPTransactionRepo,
	streaks StreakService,
	completions repos.ActivityCompletionRepo,
	progress repos.UnitProgressRepo,
	cache SummaryCache,
) TrackerService {
	return &trackerService{
		db:          db,
		log:         baseLog.With("service", "TrackerService"),
		xpRepo:      xpRepo,
		streaks:     streaks,
		completions: completions,
		progress:    progress,
		cache:       cache,
	}
}

func (s *trackerService) Summary(ctx context.Context, userID uuid.UUID, tzOffsetMinutes int) (*TrackerSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	base, ok := s.cachedBase(ctx, userID)
	if !ok {
		var err error
		base, err = s.computeBase(ctx, userID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetSummary(ctx, userID, base)
		}
	}

	// Streak fields depend on the caller's tz offset, so a cached summary is
	// never served as-is: the streak is derived fresh for this request.
	streak, err := s.streaks.Streak(ctx, nil, userID, tzOffsetMinutes)
	if err != nil {
		return nil, err
	}
	out := *base
	out.StreakDays = streak.CurrentStreakDays
	out.LongestStreakDays = streak.LongestStreakDays
	out.TodayCounted = streak.TodayCounted
	out.LastStreakDate = streak.LastStreakDate
	return &out, nil
}

func (s *trackerService) cachedBase(ctx context.Context, userID uuid.UUID) (*TrackerSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, ok := s.cache.GetSummary(ctx, userID)
	if !ok || cached == nil {
		return nil, false
	}
	base := *cached
	return &base, true
}

func (s *trackerService) computeBase(ctx context.Context, userID uuid.UUID) (*TrackerSummary, error) {
	out := &TrackerSummary{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.xpRepo.TotalByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		out.TotalXP = total
		return nil
	})
	g.Go(func() error {
		count, err := s.completions.CountByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		out.CompletedActivities = count
		return nil
	})
	g.Go(func() error {
		rows, err := s.progress.GetByUserID(gctx, nil, userID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.IsCompleted() {
				out.CompletedUnits++
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

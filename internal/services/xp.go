package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

// Closed set of XP source types. Unknown values are rejected, not stored.
const (
	SourceActivityCompletion = "activity_completion"
	SourceUnitCompletion     = "unit_completion"
	SourceLessonCompletion   = "lesson_completion"
	SourceStreakMilestone    = "streak_milestone"
	SourceDailyStreak        = "daily_streak"
	SourceDailyGoalMet       = "daily_goal_met"
	SourcePerfectUnit        = "perfect_unit"
	SourceSpeedBonus         = "speed_bonus"
	SourceManualAdjustment   = "manual_adjustment"
	SourceBonusReward        = "bonus_reward"
)

var validSourceTypes = map[string]bool{
	SourceActivityCompletion: true,
	SourceUnitCompletion:     true,
	SourceLessonCompletion:   true,
	SourceStreakMilestone:    true,
	SourceDailyStreak:        true,
	SourceDailyGoalMet:       true,
	SourcePerfectUnit:        true,
	SourceSpeedBonus:         true,
	SourceManualAdjustment:   true,
	SourceBonusReward:        true,
}

type AwardInput struct {
	UserID             uuid.UUID
	Amount             int
	SourceType         string
	SourceID           string
	Metadata           map[string]any
	SkipDuplicateCheck bool
}

type AwardResult struct {
	Accepted bool  `json:"accepted"`
	NewTotal int64 `json:"new_total"`
}

type XPService interface {
	// Award appends a ledger row unless one already exists for this user and
	// (sourceType, sourceId). A duplicate is a normal outcome (Accepted=false,
	// unchanged total), never an error.
	Award(ctx context.Context, tx *gorm.DB, in AwardInput) (AwardResult, error)
	Total(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type xpService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.XPTransactionRepo
	cache SummaryCache
}

func NewXPService(db *gorm.DB, baseLog *logger.Logger, repo repos.XPTransactionRepo, cache SummaryCache) XPService {
	return &xpService{
		db:    db,
		log:   baseLog.With("service", "XPService"),
		repo:  repo,
		cache: cache,
	}
}

func (s *xpService) Award(ctx context.Context, tx *gorm.DB, in AwardInput) (AwardResult, error) {
	if in.UserID == uuid.Nil {
		return AwardResult{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return AwardResult{}, fmt.Errorf("%w: amount must be a positive integer", ErrInvalidInput)
	}
	sourceType := strings.TrimSpace(strings.ToLower(in.SourceType))
	if !validSourceTypes[sourceType] {
		return AwardResult{}, fmt.Errorf("%w: unknown sourceType %q", ErrInvalidInput, in.SourceType)
	}
	sourceID := strings.TrimSpace(in.SourceID)
	if sourceID == "" {
		return AwardResult{}, fmt.Errorf("%w: sourceId is required", ErrInvalidInput)
	}

	// The dedupe key is the idempotency mechanism: a unique (user_id,
	// dedupe_key) index means two concurrent awards for the same source event
	// race at the constraint, and the loser reads back as "already awarded".
	// Bypassing the check (manual adjustments) gets a synthetic key.
	dedupeKey := sourceType + ":" + sourceID
	if in.SkipDuplicateCheck {
		dedupeKey = sourceType + ":" + sourceID + ":" + uuid.New().String()
	}

	var metadata datatypes.JSON
	if len(in.Metadata) > 0 {
		b, err := json.Marshal(in.Metadata)
		if err != nil {
			return AwardResult{}, fmt.Errorf("%w: metadata is not serializable", ErrInvalidInput)
		}
		metadata = datatypes.JSON(b)
	}

	now := time.Now().UTC()
	row := &types.XPTransaction{
		ID:         uuid.New(),
		UserID:     in.UserID,
		Amount:     in.Amount,
		SourceType: sourceType,
		SourceID:   sourceID,
		DedupeKey:  dedupeKey,
		Metadata:   metadata,
		OccurredAt: now,
		CreatedAt:  now,
	}

	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	inserted, err := s.repo.CreateIgnoreDuplicates(ctx, transaction, row)
	if err != nil {
		s.log.Error("xp award failed", "user_id", in.UserID, "source_type", sourceType, "error", err)
		return AwardResult{}, err
	}
	total, err := s.repo.TotalByUserID(ctx, transaction, in.UserID)
	if err != nil {
		return AwardResult{}, err
	}
	if inserted {
		s.log.Info("xp awarded", "user_id", in.UserID, "source_type", sourceType, "amount", in.Amount)
		if s.cache != nil {
			s.cache.InvalidateSummary(ctx, in.UserID)
		}
	} else {
		s.log.Debug("xp award deduplicated", "user_id", in.UserID, "source_type", sourceType, "source_id", sourceID)
	}
	return AwardResult{Accepted: inserted, NewTotal: total}, nil
}

func (s *xpService) Total(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.repo.TotalByUserID(ctx, tx, userID)
}

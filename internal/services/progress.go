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

const (
	EventStart    = "start"
	EventAttempt  = "attempt"
	EventComplete = "complete"
)

var validEventKinds = map[string]bool{
	EventStart:    true,
	EventAttempt:  true,
	EventComplete: true,
}

type ActivityEventInput struct {
	UserID             uuid.UUID
	ActivityExternalID string
	Kind               string
	IsCorrect          *bool
	Score              *float64
	ClientEventID      string
	Data               map[string]any
}

type ActivityEventResult struct {
	Recorded        bool                `json:"recorded"`
	FirstCompletion bool                `json:"first_completion"`
	Progress        *types.UnitProgress `json:"progress,omitempty"`
}

type ProgressService interface {
	// RecordActivityEvent logs start/attempt events for analytics and, for
	// complete events, marks the activity done at most once per user and bumps
	// the unit counter atomically with the marker insert.
	RecordActivityEvent(ctx context.Context, in ActivityEventInput) (ActivityEventResult, error)
	// UpsertUnitProgress is the coarse client-snapshot path: the counter only
	// ever moves up, so replayed or stale snapshots are no-ops.
	UpsertUnitProgress(ctx context.Context, userID uuid.UUID, unitRef string, currentActivityNumber, totalActivities int) (*types.UnitProgress, error)
	// GetProgress returns a zeroed record when the user has not touched the
	// unit yet; only an unknown unit is a not-found.
	GetProgress(ctx context.Context, userID uuid.UUID, unitRef string) (*types.UnitProgress, error)
	// TouchAccess stamps last_accessed_at. Best-effort: storage failures are
	// logged and absorbed so they never break the screen that fired them.
	TouchAccess(ctx context.Context, userID uuid.UUID, unitRef string) error
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	unitRepo     repos.UnitRepo
	activityRepo repos.ActivityRepo
	progressRepo repos.UnitProgressRepo
	completions  repos.ActivityCompletionRepo
	events       repos.PracticeEventRepo
	cache        SummaryCache
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	unitRepo repos.UnitRepo,
	activityRepo repos.ActivityRepo,
	progressRepo repos.UnitProgressRepo,
	completions repos.ActivityCompletionRepo,
	events repos.PracticeEventRepo,
	cache SummaryCache,
) ProgressService {
	return &progressService{
		db:           db,
		log:          baseLog.With("service", "ProgressService"),
		unitRepo:     unitRepo,
		activityRepo: activityRepo,
		progressRepo: progressRepo,
		completions:  completions,
		events:       events,
		cache:        cache,
	}
}

func (s *progressService) RecordActivityEvent(ctx context.Context, in ActivityEventInput) (ActivityEventResult, error) {
	if in.UserID == uuid.Nil {
		return ActivityEventResult{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	kind := strings.TrimSpace(strings.ToLower(in.Kind))
	if !validEventKinds[kind] {
		return ActivityEventResult{}, fmt.Errorf("%w: unknown event %q", ErrInvalidInput, in.Kind)
	}
	externalID := strings.TrimSpace(in.ActivityExternalID)
	if externalID == "" {
		return ActivityEventResult{}, fmt.Errorf("%w: activityExternalId is required", ErrInvalidInput)
	}

	activity, err := s.activityRepo.GetByExternalID(ctx, nil, externalID)
	if err != nil {
		return ActivityEventResult{}, err
	}

	s.logEvent(ctx, in, kind, activity)

	if kind != EventComplete {
		return ActivityEventResult{Recorded: true}, nil
	}

	if activity == nil {
		return ActivityEventResult{}, fmt.Errorf("%w: activity %q", ErrNotFound, externalID)
	}
	unit, err := s.unitRepo.GetByIDs(ctx, nil, []uuid.UUID{activity.UnitID})
	if err != nil {
		return ActivityEventResult{}, err
	}
	if len(unit) == 0 {
		return ActivityEventResult{}, fmt.Errorf("%w: unit for activity %q", ErrNotFound, externalID)
	}

	// Marker insert and counter bump run in one transaction. The unique
	// (user_id, activity_id) index decides which of two concurrent completes
	// is first; the loser sees RowsAffected==0 and leaves the counter alone.
	var result ActivityEventResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.EnsureRow(ctx, tx, in.UserID, activity.UnitID, unit[0].TotalActivityCount); err != nil {
			return err
		}
		now := time.Now().UTC()
		first, err := s.completions.CreateIgnoreDuplicates(ctx, tx, &types.ActivityCompletion{
			ID:          uuid.New(),
			UserID:      in.UserID,
			ActivityID:  activity.ID,
			UnitID:      activity.UnitID,
			CompletedAt: now,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		result.Recorded = true
		result.FirstCompletion = first
		if first {
			if _, err := s.progressRepo.IncrementCompleted(ctx, tx, in.UserID, activity.UnitID); err != nil {
				return err
			}
		}
		progress, err := s.progressRepo.GetByUserAndUnitID(ctx, tx, in.UserID, activity.UnitID)
		if err != nil {
			return err
		}
		result.Progress = progress
		return nil
	})
	if err != nil {
		s.log.Error("activity completion failed", "user_id", in.UserID, "activity_external_id", externalID, "error", err)
		return ActivityEventResult{}, err
	}
	if result.FirstCompletion && s.cache != nil {
		s.cache.InvalidateSummary(ctx, in.UserID)
	}
	return result, nil
}

// logEvent writes the analytics row. Failures are absorbed: the event log is
// a non-critical path and must never fail the completion flow.
func (s *progressService) logEvent(ctx context.Context, in ActivityEventInput, kind string, activity *types.Activity) {
	now := time.Now().UTC()
	clientID := strings.TrimSpace(in.ClientEventID)
	if clientID == "" {
		clientID = uuid.New().String()
	}
	var activityID *uuid.UUID
	if activity != nil {
		activityID = &activity.ID
	}
	var data datatypes.JSON
	if len(in.Data) > 0 {
		if b, err := json.Marshal(in.Data); err == nil {
			data = datatypes.JSON(b)
		}
	}
	_, err := s.events.CreateIgnoreDuplicates(ctx, nil, &types.PracticeEvent{
		ID:                 uuid.New(),
		UserID:             in.UserID,
		ActivityID:         activityID,
		ActivityExternalID: strings.TrimSpace(in.ActivityExternalID),
		ClientEventID:      clientID,
		Kind:               kind,
		IsCorrect:          in.IsCorrect,
		Score:              in.Score,
		Data:               data,
		OccurredAt:         now,
		CreatedAt:          now,
	})
	if err != nil {
		s.log.Warn("practice event log failed", "user_id", in.UserID, "kind", kind, "error", err)
	}
}

func (s *progressService) UpsertUnitProgress(ctx context.Context, userID uuid.UUID, unitRef string, currentActivityNumber, totalActivities int) (*types.UnitProgress, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if currentActivityNumber < 0 || totalActivities <= 0 || currentActivityNumber > totalActivities {
		return nil, fmt.Errorf("%w: activity counts out of range", ErrInvalidInput)
	}
	unit, err := s.resolveUnit(ctx, unitRef)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.EnsureRow(ctx, tx, userID, unit.ID, totalActivities); err != nil {
			return err
		}
		if err := s.progressRepo.SetTotal(ctx, tx, userID, unit.ID, totalActivities); err != nil {
			return err
		}
		_, err := s.progressRepo.RaiseCompleted(ctx, tx, userID, unit.ID, currentActivityNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetByUserAndUnitID(ctx, nil, userID, unit.ID)
}

func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID, unitRef string) (*types.UnitProgress, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	unit, err := s.resolveUnit(ctx, unitRef)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetByUserAndUnitID(ctx, nil, userID, unit.ID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		// No record means 0% progress, not an error.
		return &types.UnitProgress{
			UserID:             userID,
			UnitID:             unit.ID,
			TotalActivityCount: unit.TotalActivityCount,
		}, nil
	}
	return progress, nil
}

func (s *progressService) TouchAccess(ctx context.Context, userID uuid.UUID, unitRef string) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	unit, err := s.resolveUnit(ctx, unitRef)
	if err != nil {
		if isCallerError(err) {
			return err
		}
		s.log.Warn("touch access failed", "user_id", userID, "unit", unitRef, "error", err)
		return nil
	}
	now := time.Now().UTC()
	if err := s.progressRepo.EnsureRow(ctx, nil, userID, unit.ID, unit.TotalActivityCount); err != nil {
		s.log.Warn("touch access failed", "user_id", userID, "unit", unitRef, "error", err)
		return nil
	}
	if err := s.progressRepo.TouchAccess(ctx, nil, userID, unit.ID, now); err != nil {
		s.log.Warn("touch access failed", "user_id", userID, "unit", unitRef, "error", err)
	}
	return nil
}

// resolveUnit accepts either the internal uuid or the catalog external id.
func (s *progressService) resolveUnit(ctx context.Context, unitRef string) (*types.Unit, error) {
	ref := strings.TrimSpace(unitRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: unitId is required", ErrInvalidInput)
	}
	if id, err := uuid.Parse(ref); err == nil {
		units, err := s.unitRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
		if err != nil {
			return nil, err
		}
		if len(units) > 0 {
			return units[0], nil
		}
		return nil, fmt.Errorf("%w: unit %q", ErrNotFound, ref)
	}
	unit, err := s.unitRepo.GetByExternalID(ctx, nil, ref)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, fmt.Errorf("%w: unit %q", ErrNotFound, ref)
	}
	return unit, nil
}

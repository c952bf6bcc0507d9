package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

type ResumeTarget struct {
	UnitID             uuid.UUID `json:"unit_id"`
	UnitExternalID     string    `json:"unit_external_id"`
	ActivityID         uuid.UUID `json:"activity_id"`
	ActivityExternalID string    `json:"activity_external_id"`
	ReviewMode         bool      `json:"review_mode"`
}

type ResumeService interface {
	// ResumeTarget picks the lowest-order incomplete unit and its first
	// not-yet-completed activity. When everything is complete it falls back to
	// the last unit's first activity (review mode); it returns nil only when
	// no units exist at all.
	ResumeTarget(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*ResumeTarget, error)
}

type resumeService struct {
	db           *gorm.DB
	log          *logger.Logger
	unitRepo     repos.UnitRepo
	activityRepo repos.ActivityRepo
	completions  repos.ActivityCompletionRepo
}

func NewResumeService(db *gorm.DB, baseLog *logger.Logger, unitRepo repos.UnitRepo, activityRepo repos.ActivityRepo, completions repos.ActivityCompletionRepo) ResumeService {
	return &resumeService{
		db:           db,
		log:          baseLog.With("service", "ResumeService"),
		unitRepo:     unitRepo,
		activityRepo: activityRepo,
		completions:  completions,
	}
}

func (s *resumeService) ResumeTarget(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*ResumeTarget, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	units, err := s.unitRepo.GetAllOrdered(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, nil
	}

	completed, err := s.completions.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	done := make(map[uuid.UUID]bool, len(completed))
	for _, c := range completed {
		done[c.ActivityID] = true
	}

	for _, unit := range units {
		target, err := s.firstOpenActivity(ctx, tx, unit, done)
		if err != nil {
			return nil, err
		}
		if target != nil {
			return target, nil
		}
	}

	// Everything is complete: land on the last unit's first activity so a
	// finished learner always has somewhere to go.
	last := units[len(units)-1]
	activities, err := s.activityRepo.GetByUnitIDOrdered(ctx, tx, last.ID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, nil
	}
	return &ResumeTarget{
		UnitID:             last.ID,
		UnitExternalID:     last.ExternalID,
		ActivityID:         activities[0].ID,
		ActivityExternalID: activities[0].ExternalID,
		ReviewMode:         true,
	}, nil
}

func (s *resumeService) firstOpenActivity(ctx context.Context, tx *gorm.DB, unit *types.Unit, done map[uuid.UUID]bool) (*ResumeTarget, error) {
	activities, err := s.activityRepo.GetByUnitIDOrdered(ctx, tx, unit.ID)
	if err != nil {
		return nil, err
	}
	for _, a := range activities {
		if !done[a.ID] {
			return &ResumeTarget{
				UnitID:             unit.ID,
				UnitExternalID:     unit.ExternalID,
				ActivityID:         a.ID,
				ActivityExternalID: a.ExternalID,
			}, nil
		}
	}
	return nil, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
)

type UnitSummary struct {
	UnitID                 uuid.UUID `json:"unit_id"`
	ExternalID             string    `json:"external_id"`
	Title                  string    `json:"title"`
	DisplayOrder           int       `json:"display_order"`
	TotalActivityCount     int       `json:"total_activity_count"`
	CompletedActivityCount int       `json:"completed_activity_count"`
	PercentComplete        int       `json:"percent_complete"`
	IsCompleted            bool      `json:"is_completed"`
}

type UnitService interface {
	// ListWithProgress returns every unit in display order joined with the
	// user's progress; units the user never opened report zero progress.
	ListWithProgress(ctx context.Context, userID uuid.UUID) ([]*UnitSummary, error)
}

type unitService struct {
	db           *gorm.DB
	log          *logger.Logger
	unitRepo     repos.UnitRepo
	progressRepo repos.UnitProgressRepo
}

func NewUnitService(db *gorm.DB, baseLog *logger.Logger, unitRepo repos.UnitRepo, progressRepo repos.UnitProgressRepo) UnitService {
	return &unitService{
		db:           db,
		log:          baseLog.With("service", "UnitService"),
		unitRepo:     unitRepo,
		progressRepo: progressRepo,
	}
}

func (s *unitService) ListWithProgress(ctx context.Context, userID uuid.UUID) ([]*UnitSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	units, err := s.unitRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		return nil, err
	}
	progressRows, err := s.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	byUnit := make(map[uuid.UUID]int, len(progressRows))
	for _, row := range progressRows {
		byUnit[row.UnitID] = row.CompletedActivityCount
	}

	out := make([]*UnitSummary, 0, len(units))
	for _, u := range units {
		completed := byUnit[u.ID]
		if completed > u.TotalActivityCount {
			completed = u.TotalActivityCount
		}
		percent := 0
		if u.TotalActivityCount > 0 {
			percent = completed * 100 / u.TotalActivityCount
		}
		out = append(out, &UnitSummary{
			UnitID:                 u.ID,
			ExternalID:             u.ExternalID,
			Title:                  u.Title,
			DisplayOrder:           u.DisplayOrder,
			TotalActivityCount:     u.TotalActivityCount,
			CompletedActivityCount: completed,
			PercentComplete:        percent,
			IsCompleted:            u.TotalActivityCount > 0 && completed >= u.TotalActivityCount,
		})
	}
	return out, nil
}

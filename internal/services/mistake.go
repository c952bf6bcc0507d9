package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

type MistakeInput struct {
	UserID             uuid.UUID
	UnitRef            string
	ActivityExternalID string
	QuestionText       string
	UserAnswer         string
	CorrectAnswer      string
	MistakeType        string
	ClientMistakeID    string
}

type MistakeService interface {
	// Record is best-effort: validation errors are returned so malformed rows
	// never land, but storage failures are logged and absorbed so the
	// activity flow that produced the mistake is never blocked by it.
	Record(ctx context.Context, in MistakeInput) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.MistakeRecord, error)
}

type mistakeService struct {
	db           *gorm.DB
	log          *logger.Logger
	repo         repos.MistakeRepo
	unitRepo     repos.UnitRepo
	activityRepo repos.ActivityRepo
}

func NewMistakeService(db *gorm.DB, baseLog *logger.Logger, repo repos.MistakeRepo, unitRepo repos.UnitRepo, activityRepo repos.ActivityRepo) MistakeService {
	return &mistakeService{
		db:           db,
		log:          baseLog.With("service", "MistakeService"),
		repo:         repo,
		unitRepo:     unitRepo,
		activityRepo: activityRepo,
	}
}

func (s *mistakeService) Record(ctx context.Context, in MistakeInput) error {
	if in.UserID == uuid.Nil {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	externalID := strings.TrimSpace(in.ActivityExternalID)
	if externalID == "" {
		return fmt.Errorf("%w: activityExternalId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.QuestionText) == "" || strings.TrimSpace(in.CorrectAnswer) == "" {
		return fmt.Errorf("%w: questionText and correctAnswer are required", ErrInvalidInput)
	}

	// Reference resolution is opportunistic; a mistake against content we
	// cannot resolve is still worth keeping.
	var unitID, activityID *uuid.UUID
	if activity, err := s.activityRepo.GetByExternalID(ctx, nil, externalID); err == nil && activity != nil {
		activityID = &activity.ID
		unitID = &activity.UnitID
	}
	if unitID == nil {
		if ref := strings.TrimSpace(in.UnitRef); ref != "" {
			if unit, err := s.unitRepo.GetByExternalID(ctx, nil, ref); err == nil && unit != nil {
				unitID = &unit.ID
			}
		}
	}

	var clientID *string
	if v := strings.TrimSpace(in.ClientMistakeID); v != "" {
		clientID = &v
	}

	now := time.Now().UTC()
	_, err := s.repo.CreateIgnoreDuplicates(ctx, nil, &types.MistakeRecord{
		ID:                 uuid.New(),
		UserID:             in.UserID,
		UnitID:             unitID,
		ActivityID:         activityID,
		ActivityExternalID: externalID,
		QuestionText:       in.QuestionText,
		UserAnswer:         in.UserAnswer,
		CorrectAnswer:      in.CorrectAnswer,
		MistakeType:        strings.TrimSpace(in.MistakeType),
		ClientMistakeID:    clientID,
		OccurredAt:         now,
		CreatedAt:          now,
	})
	if err != nil {
		s.log.Warn("mistake record failed", "user_id", in.UserID, "activity_external_id", externalID, "error", err)
	}
	return nil
}

func (s *mistakeService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.MistakeRecord, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	return s.repo.GetByUserID(ctx, nil, userID)
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/linguabridge-backend/internal/content"
	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
	"github.com/yungbote/linguabridge-backend/internal/types"
)

type ContentSyncService interface {
	// Sync pushes the embedded catalog into the unit/activity tables so
	// ordering and totals have a durable source of truth. Learner rows are
	// never touched; re-running is idempotent.
	Sync(ctx context.Context) error
}

type contentSyncService struct {
	db           *gorm.DB
	log          *logger.Logger
	catalog      *content.Catalog
	unitRepo     repos.UnitRepo
	activityRepo repos.ActivityRepo
}

func NewContentSyncService(db *gorm.DB, baseLog *logger.Logger, catalog *content.Catalog, unitRepo repos.UnitRepo, activityRepo repos.ActivityRepo) ContentSyncService {
	return &contentSyncService{
		db:           db,
		log:          baseLog.With("service", "ContentSyncService"),
		catalog:      catalog,
		unitRepo:     unitRepo,
		activityRepo: activityRepo,
	}
}

func (s *contentSyncService) Sync(ctx context.Context) error {
	if s.catalog == nil {
		return nil
	}
	unitCount := 0
	activityCount := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, u := range s.catalog.Units {
			row := &types.Unit{
				ID:                 uuid.New(),
				ExternalID:         u.ExternalID,
				Title:              u.Title,
				DisplayOrder:       u.DisplayOrder,
				TotalActivityCount: len(u.Activities),
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := s.unitRepo.UpsertByExternalID(ctx, tx, row); err != nil {
				return err
			}
			stored, err := s.unitRepo.GetByExternalID(ctx, tx, u.ExternalID)
			if err != nil {
				return err
			}
			unitCount++
			for _, a := range u.Activities {
				if err := s.activityRepo.UpsertByExternalID(ctx, tx, &types.Activity{
					ID:           uuid.New(),
					ExternalID:   a.ExternalID,
					UnitID:       stored.ID,
					Type:         a.Type,
					ComponentKey: a.ComponentKey,
					OrderIndex:   a.OrderIndex,
					Title:        a.Title,
					CreatedAt:    now,
					UpdatedAt:    now,
				}); err != nil {
					return err
				}
				activityCount++
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("content sync failed", "error", err)
		return err
	}
	s.log.Info("content sync complete", "units", unitCount, "activities", activityCount)
	return nil
}

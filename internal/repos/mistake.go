package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type MistakeRepo interface {
  // CreateIgnoreDuplicates drops rows whose client_mistake_id was already
  // ingested. Dedupe is advisory: rows without a client id always insert.
  CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.MistakeRecord) (bool, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MistakeRecord, error)
  GetByUserAndActivityExternalID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityExternalID string) ([]*types.MistakeRecord, error)
}

type mistakeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMistakeRepo(db *gorm.DB, baseLog *logger.Logger) MistakeRepo {
  repoLog := baseLog.With("repo", "MistakeRepo")
  return &mistakeRepo{db: db, log: repoLog}
}

func (r *mistakeRepo) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.MistakeRecord) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "client_mistake_id"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *mistakeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MistakeRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MistakeRecord
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("occurred_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *mistakeRepo) GetByUserAndActivityExternalID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityExternalID string) ([]*types.MistakeRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MistakeRecord
  if userID == uuid.Nil || activityExternalID == "" {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND activity_external_id = ?", userID, activityExternalID).
    Order("occurred_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

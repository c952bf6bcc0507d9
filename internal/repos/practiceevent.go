package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type PracticeEventRepo interface {
  // CreateIgnoreDuplicates drops rows whose client_event_id was already
  // ingested, so retried batches do not inflate analytics.
  CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.PracticeEvent) (bool, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PracticeEvent, error)
}

type practiceEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPracticeEventRepo(db *gorm.DB, baseLog *logger.Logger) PracticeEventRepo {
  repoLog := baseLog.With("repo", "PracticeEventRepo")
  return &practiceEventRepo{db: db, log: repoLog}
}

func (r *practiceEventRepo) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.PracticeEvent) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "client_event_id"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *practiceEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PracticeEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.PracticeEvent
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

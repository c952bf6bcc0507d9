package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type ActivityCompletionRepo interface {
  // CreateIgnoreDuplicates inserts the completion marker unless the
  // (user_id, activity_id) pair already exists. The returned bool reports
  // whether this call was the first completion.
  CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.ActivityCompletion) (bool, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ActivityCompletion, error)
  GetByUserAndUnitID(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) ([]*types.ActivityCompletion, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type activityCompletionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivityCompletionRepo(db *gorm.DB, baseLog *logger.Logger) ActivityCompletionRepo {
  repoLog := baseLog.With("repo", "ActivityCompletionRepo")
  return &activityCompletionRepo{db: db, log: repoLog}
}

func (r *activityCompletionRepo) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.ActivityCompletion) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *activityCompletionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ActivityCompletion, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ActivityCompletion
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *activityCompletionRepo) GetByUserAndUnitID(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) ([]*types.ActivityCompletion, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ActivityCompletion
  if userID == uuid.Nil || unitID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND unit_id = ?", userID, unitID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *activityCompletionRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return 0, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ActivityCompletion{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

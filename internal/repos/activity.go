package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type ActivityRepo interface {
  GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Activity, error)
  GetByUnitIDOrdered(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.Activity, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error)
  UpsertByExternalID(ctx context.Context, tx *gorm.DB, row *types.Activity) error
}

type activityRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
  repoLog := baseLog.With("repo", "ActivityRepo")
  return &activityRepo{db: db, log: repoLog}
}

func (r *activityRepo) GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if externalID == "" {
    return nil, nil
  }

  var row types.Activity
  err := transaction.WithContext(ctx).
    Where("external_id = ?", externalID).
    Limit(1).
    Find(&row).Error
  if err != nil {
    return nil, err
  }
  if row.ID == uuid.Nil {
    return nil, nil
  }
  return &row, nil
}

func (r *activityRepo) GetByUnitIDOrdered(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Activity
  if unitID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("unit_id = ?", unitID).
    Order("order_index ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *activityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Activity, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Activity
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *activityRepo) UpsertByExternalID(ctx context.Context, tx *gorm.DB, row *types.Activity) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "external_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "unit_id", "type", "component_key", "order_index", "title", "updated_at",
      }),
    }).
    Create(row).Error
}

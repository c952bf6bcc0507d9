package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type UnitRepo interface {
  GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Unit, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Unit, error)
  GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Unit, error)
  // UpsertByExternalID syncs a catalog row; display order, title and activity
  // totals follow the catalog on every boot.
  UpsertByExternalID(ctx context.Context, tx *gorm.DB, row *types.Unit) error
}

type unitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
  repoLog := baseLog.With("repo", "UnitRepo")
  return &unitRepo{db: db, log: repoLog}
}

func (r *unitRepo) GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Unit
  if err := transaction.WithContext(ctx).
    Order("display_order ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *unitRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Unit
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

func (r *unitRepo) GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*types.Unit, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if externalID == "" {
    return nil, nil
  }

  var row types.Unit
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

func (r *unitRepo) UpsertByExternalID(ctx context.Context, tx *gorm.DB, row *types.Unit) error {
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
        "title", "display_order", "total_activity_count", "updated_at",
      }),
    }).
    Create(row).Error
}

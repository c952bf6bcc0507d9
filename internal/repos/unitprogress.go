package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/types"
)

type UnitProgressRepo interface {
  GetByUserAndUnitID(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) (*types.UnitProgress, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnitProgress, error)
  // RaiseCompleted lifts the completed counter to the given value, guarded so
  // a stale client snapshot can never roll progress backwards. Returns false
  // when the guard rejected the update.
  RaiseCompleted(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, completed int) (bool, error)
  // SetTotal follows the latest snapshot's activity total, guarded so the
  // total can never drop below what the user already completed.
  SetTotal(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, totalActivities int) error
  // IncrementCompleted bumps the completed counter by one, guarded so it can
  // never pass the unit total. Returns false when the guard rejected the
  // update (row missing or already at total).
  IncrementCompleted(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) (bool, error)
  EnsureRow(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, totalActivities int) error
  TouchAccess(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, at time.Time) error
}

type unitProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUnitProgressRepo(db *gorm.DB, baseLog *logger.Logger) UnitProgressRepo {
  repoLog := baseLog.With("repo", "UnitProgressRepo")
  return &unitProgressRepo{db: db, log: repoLog}
}

func (r *unitProgressRepo) GetByUserAndUnitID(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) (*types.UnitProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return nil, nil
  }

  var row types.UnitProgress
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND unit_id = ?", userID, unitID).
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

func (r *unitProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnitProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UnitProgress
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

func (r *unitProgressRepo) RaiseCompleted(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, completed int) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Model(&types.UnitProgress{}).
    Where("user_id = ? AND unit_id = ? AND completed_activity_count < ? AND ? <= total_activity_count", userID, unitID, completed, completed).
    Updates(map[string]interface{}{
      "completed_activity_count": completed,
      "updated_at":               time.Now().UTC(),
    })
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *unitProgressRepo) SetTotal(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, totalActivities int) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.UnitProgress{}).
    Where("user_id = ? AND unit_id = ? AND completed_activity_count <= ?", userID, unitID, totalActivities).
    Updates(map[string]interface{}{
      "total_activity_count": totalActivities,
      "updated_at":           time.Now().UTC(),
    }).Error
}

func (r *unitProgressRepo) EnsureRow(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, totalActivities int) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return nil
  }

  now := time.Now().UTC()
  row := &types.UnitProgress{
    ID:                 uuid.New(),
    UserID:             userID,
    UnitID:             unitID,
    TotalActivityCount: totalActivities,
    CreatedAt:          now,
    UpdatedAt:          now,
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "unit_id"}},
      DoNothing: true,
    }).
    Create(row).Error
}

func (r *unitProgressRepo) IncrementCompleted(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Model(&types.UnitProgress{}).
    Where("user_id = ? AND unit_id = ? AND completed_activity_count < total_activity_count", userID, unitID).
    Updates(map[string]interface{}{
      "completed_activity_count": gorm.Expr("completed_activity_count + 1"),
      "updated_at":               time.Now().UTC(),
    })
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *unitProgressRepo) TouchAccess(ctx context.Context, tx *gorm.DB, userID, unitID uuid.UUID, at time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || unitID == uuid.Nil {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.UnitProgress{}).
    Where("user_id = ? AND unit_id = ?", userID, unitID).
    Updates(map[string]interface{}{
      "last_accessed_at": at,
      "updated_at":       at,
    }).Error
}

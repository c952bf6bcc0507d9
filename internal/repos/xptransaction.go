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

type XPTransactionRepo interface {
  // CreateIgnoreDuplicates inserts the row unless the (user_id, dedupe_key)
  // pair already exists. Returns false when the row was dropped by the
  // conflict clause, which callers treat as "already awarded".
  CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.XPTransaction) (bool, error)
  TotalByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPTransaction, error)
  OccurredAtByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]time.Time, error)
}

type xpTransactionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewXPTransactionRepo(db *gorm.DB, baseLog *logger.Logger) XPTransactionRepo {
  repoLog := baseLog.With("repo", "XPTransactionRepo")
  return &xpTransactionRepo{db: db, log: repoLog}
}

func (r *xpTransactionRepo) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, row *types.XPTransaction) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }

  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "dedupe_key"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (r *xpTransactionRepo) TotalByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return 0, nil
  }

  var total int64
  if err := transaction.WithContext(ctx).
    Model(&types.XPTransaction{}).
    Where("user_id = ?", userID).
    Select("COALESCE(SUM(amount), 0)").
    Scan(&total).Error; err != nil {
    return 0, err
  }
  return total, nil
}

func (r *xpTransactionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.XPTransaction, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.XPTransaction
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

func (r *xpTransactionRepo) OccurredAtByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]time.Time, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []time.Time
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.XPTransaction{}).
    Where("user_id = ?", userID).
    Order("occurred_at ASC").
    Pluck("occurred_at", &results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

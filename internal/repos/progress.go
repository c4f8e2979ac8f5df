package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type ProgressRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Progress) ([]*types.Progress, error)
  GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.Progress, error)
  UpdateFieldsByStepID(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, fields map[string]any) error
  FullDeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error
}

type progressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
  repoLog := baseLog.With("repo", "ProgressRepo")
  return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Progress) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.Progress{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *progressRepo) GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if len(stepIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("step_id IN ?", stepIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *progressRepo) UpdateFieldsByStepID(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Progress{}).
    Where("step_id = ?", stepID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}

func (r *progressRepo) FullDeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(stepIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("step_id IN ?", stepIDs).
    Delete(&types.Progress{}).Error; err != nil {
    return err
  }
  return nil
}

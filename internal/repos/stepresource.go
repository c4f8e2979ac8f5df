package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type StepResourceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.StepResource) ([]*types.StepResource, error)
  GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.StepResource, error)
  GetByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) ([]*types.StepResource, error)
  FullDeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
  FullDeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error
}

type stepResourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewStepResourceRepo(db *gorm.DB, baseLog *logger.Logger) StepResourceRepo {
  repoLog := baseLog.With("repo", "StepResourceRepo")
  return &stepResourceRepo{db: db, log: repoLog}
}

func (r *stepResourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.StepResource) ([]*types.StepResource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.StepResource{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *stepResourceRepo) GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.StepResource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.StepResource
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

func (r *stepResourceRepo) GetByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) ([]*types.StepResource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.StepResource
  if len(resourceIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("resource_id IN ?", resourceIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *stepResourceRepo) FullDeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(resourceIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("resource_id IN ?", resourceIDs).
    Delete(&types.StepResource{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *stepResourceRepo) FullDeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(stepIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("step_id IN ?", stepIDs).
    Delete(&types.StepResource{}).Error; err != nil {
    return err
  }
  return nil
}

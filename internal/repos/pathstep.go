package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type PathStepRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.PathStep) ([]*types.PathStep, error)
  GetBySkillPathIDs(ctx context.Context, tx *gorm.DB, skillPathIDs []uuid.UUID) ([]*types.PathStep, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, userID uuid.UUID) (*types.PathStep, error)
  FullDeleteBySkillPathIDs(ctx context.Context, tx *gorm.DB, skillPathIDs []uuid.UUID) error
}

type pathStepRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPathStepRepo(db *gorm.DB, baseLog *logger.Logger) PathStepRepo {
  repoLog := baseLog.With("repo", "PathStepRepo")
  return &pathStepRepo{db: db, log: repoLog}
}

func (r *pathStepRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PathStep) ([]*types.PathStep, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.PathStep{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *pathStepRepo) GetBySkillPathIDs(ctx context.Context, tx *gorm.DB, skillPathIDs []uuid.UUID) ([]*types.PathStep, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.PathStep
  if len(skillPathIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("skill_path_id IN ?", skillPathIDs).
    Order("step_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByIDForUser loads a step only when its owning path belongs to the user.
func (r *pathStepRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, userID uuid.UUID) (*types.PathStep, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.PathStep
  err := transaction.WithContext(ctx).
    Joins("JOIN skill_path ON skill_path.id = path_step.skill_path_id").
    Where("path_step.id = ? AND skill_path.user_id = ?", stepID, userID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (r *pathStepRepo) FullDeleteBySkillPathIDs(ctx context.Context, tx *gorm.DB, skillPathIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(skillPathIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("skill_path_id IN ?", skillPathIDs).
    Delete(&types.PathStep{}).Error; err != nil {
    return err
  }
  return nil
}

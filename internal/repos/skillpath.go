package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type SkillPathRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillPath) ([]*types.SkillPath, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SkillPath, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) (*types.SkillPath, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillPath, error)
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type skillPathRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSkillPathRepo(db *gorm.DB, baseLog *logger.Logger) SkillPathRepo {
  repoLog := baseLog.With("repo", "SkillPathRepo")
  return &skillPathRepo{db: db, log: repoLog}
}

func (r *skillPathRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillPath) ([]*types.SkillPath, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.SkillPath{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *skillPathRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SkillPath, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SkillPath
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

func (r *skillPathRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) (*types.SkillPath, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.SkillPath
  err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", id, userID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (r *skillPathRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillPath, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SkillPath
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *skillPathRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.SkillPath{}).Error; err != nil {
    return err
  }
  return nil
}

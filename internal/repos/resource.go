package repos

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type ResourceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Resource) ([]*types.Resource, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error)
  GetByURL(ctx context.Context, tx *gorm.DB, url string) (*types.Resource, error)
  FindOrCreateByURL(ctx context.Context, tx *gorm.DB, row *types.Resource) (*types.Resource, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Resource, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type resourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
  repoLog := baseLog.With("repo", "ResourceRepo")
  return &resourceRepo{db: db, log: repoLog}
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Resource) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.Resource{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *resourceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Resource
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

func (r *resourceRepo) GetByURL(ctx context.Context, tx *gorm.DB, url string) (*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if url == "" {
    return nil, nil
  }

  var result types.Resource
  err := transaction.WithContext(ctx).
    Where("url = ?", url).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

// FindOrCreateByURL resolves the catalog race on url. The insert yields to an
// existing row on conflict instead of raising a unique violation, so the
// losing writer links to the winner's row and the enclosing transaction stays
// usable. A raised violation would abort the whole transaction on postgres.
func (r *resourceRepo) FindOrCreateByURL(ctx context.Context, tx *gorm.DB, row *types.Resource) (*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{DoNothing: true}).
    Create(row)
  if result.Error != nil {
    return nil, result.Error
  }
  if result.RowsAffected > 0 {
    return row, nil
  }

  winner, err := r.GetByURL(ctx, tx, row.URL)
  if err != nil {
    return nil, err
  }
  if winner == nil {
    return nil, fmt.Errorf("resource conflict on %q with no catalog row", row.URL)
  }
  return winner, nil
}

func (r *resourceRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Resource
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *resourceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Resource{}).
    Where("id = ?", id).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}

func (r *resourceRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Resource{}).Error; err != nil {
    return err
  }
  return nil
}

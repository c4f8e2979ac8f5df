package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type UserTokenRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.UserToken) ([]*types.UserToken, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error)
  GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.UserToken, error)
  GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.UserToken, error)
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type userTokenRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
  repoLog := baseLog.With("repo", "UserTokenRepo")
  return &userTokenRepo{db: db, log: repoLog}
}

func (r *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserToken) ([]*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.UserToken{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *userTokenRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserToken
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *userTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserToken
  if len(accessTokens) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("access_token IN ?", accessTokens).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *userTokenRepo) GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.UserToken, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UserToken
  if len(refreshTokens) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("refresh_token IN ?", refreshTokens).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *userTokenRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.UserToken{}).Error; err != nil {
    return err
  }
  return nil
}

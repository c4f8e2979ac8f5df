package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type UserRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.User) ([]*types.User, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error)
  GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error)
  GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.User, error)
  UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
  EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.User) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.User{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.User
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

func (r *userRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.User
  if len(usernames) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("username IN ?", usernames).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.User
  if len(emails) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("email IN ?", emails).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("username = ?", username).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("email = ?", email).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

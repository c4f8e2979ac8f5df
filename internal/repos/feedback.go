package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/types"
)

type FeedbackRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Feedback) ([]*types.Feedback, error)
  CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type feedbackRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
  repoLog := baseLog.With("repo", "FeedbackRepo")
  return &feedbackRepo{db: db, log: repoLog}
}

func (r *feedbackRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Feedback) ([]*types.Feedback, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.Feedback{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *feedbackRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Feedback{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

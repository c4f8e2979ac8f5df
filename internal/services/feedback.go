package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

type FeedbackService interface {
  SubmitFeedback(ctx context.Context, userID uuid.UUID, skillPathID *uuid.UUID, rating int, comment string) (*types.Feedback, error)
}

type feedbackService struct {
  db  *gorm.DB
  log *logger.Logger

  feedbackRepo  repos.FeedbackRepo
  skillPathRepo repos.SkillPathRepo
}

func NewFeedbackService(
  db *gorm.DB,
  baseLog *logger.Logger,
  feedbackRepo repos.FeedbackRepo,
  skillPathRepo repos.SkillPathRepo,
) FeedbackService {
  return &feedbackService{
    db:            db,
    log:           baseLog.With("service", "FeedbackService"),
    feedbackRepo:  feedbackRepo,
    skillPathRepo: skillPathRepo,
  }
}

func (fs *feedbackService) SubmitFeedback(ctx context.Context, userID uuid.UUID, skillPathID *uuid.UUID, rating int, comment string) (*types.Feedback, error) {
  if rating < 1 || rating > 5 {
    return nil, fmt.Errorf("Rating must be between 1 and 5")
  }
  if skillPathID != nil {
    path, err := fs.skillPathRepo.GetByIDForUser(ctx, nil, *skillPathID, userID)
    if err != nil {
      return nil, fmt.Errorf("Failed to check path: %w", err)
    }
    if path == nil {
      return nil, fmt.Errorf("Path not found")
    }
  }
  row := &types.Feedback{
    ID:          uuid.New(),
    UserID:      userID,
    SkillPathID: skillPathID,
    Rating:      rating,
    Comment:     comment,
    CreatedAt:   time.Now(),
  }
  if _, err := fs.feedbackRepo.Create(ctx, nil, []*types.Feedback{row}); err != nil {
    return nil, fmt.Errorf("Failed to save feedback: %w", err)
  }
  return row, nil
}

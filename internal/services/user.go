package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

type UserService interface {
  GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
  return &userService{
    db:       db,
    log:      baseLog.With("service", "UserService"),
    userRepo: userRepo,
  }
}

func (us *userService) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  return users[0], nil
}

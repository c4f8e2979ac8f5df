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

type ProgressService interface {
  UpdateStepProgress(ctx context.Context, userID uuid.UUID, stepID uuid.UUID, status string) (int, error)
}

type progressService struct {
  db  *gorm.DB
  log *logger.Logger

  pathStepRepo repos.PathStepRepo
  progressRepo repos.ProgressRepo
}

func NewProgressService(
  db *gorm.DB,
  baseLog *logger.Logger,
  pathStepRepo repos.PathStepRepo,
  progressRepo repos.ProgressRepo,
) ProgressService {
  return &progressService{
    db:           db,
    log:          baseLog.With("service", "ProgressService"),
    pathStepRepo: pathStepRepo,
    progressRepo: progressRepo,
  }
}

func validProgressStatus(status string) bool {
  switch status {
  case types.ProgressStatusTodo, types.ProgressStatusInProgress, types.ProgressStatusDone:
    return true
  }
  return false
}

// UpdateStepProgress moves a step's progress to the requested status and
// returns the path's new completion percentage. Ownership is checked through
// the step's path; marking done stamps completed_at.
func (ps *progressService) UpdateStepProgress(ctx context.Context, userID uuid.UUID, stepID uuid.UUID, status string) (int, error) {
  if !validProgressStatus(status) {
    return 0, fmt.Errorf("Invalid status")
  }

  step, err := ps.pathStepRepo.GetByIDForUser(ctx, nil, stepID, userID)
  if err != nil {
    return 0, fmt.Errorf("Failed to load step: %w", err)
  }
  if step == nil {
    return 0, fmt.Errorf("Step not found")
  }

  err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, pErr := ps.progressRepo.GetByStepIDs(ctx, tx, []uuid.UUID{step.ID})
    if pErr != nil {
      return fmt.Errorf("Failed to load progress: %w", pErr)
    }
    now := time.Now()
    if len(existing) == 0 {
      row := &types.Progress{
        ID:        uuid.New(),
        StepID:    step.ID,
        Status:    status,
        UpdatedAt: now,
      }
      if status == types.ProgressStatusDone {
        row.CompletedAt = &now
      }
      if _, cErr := ps.progressRepo.Create(ctx, tx, []*types.Progress{row}); cErr != nil {
        return fmt.Errorf("Failed to create progress: %w", cErr)
      }
      return nil
    }
    fields := map[string]any{
      "status":     status,
      "updated_at": now,
    }
    if status == types.ProgressStatusDone {
      fields["completed_at"] = now
    }
    if uErr := ps.progressRepo.UpdateFieldsByStepID(ctx, tx, step.ID, fields); uErr != nil {
      return fmt.Errorf("Failed to update progress: %w", uErr)
    }
    return nil
  })
  if err != nil {
    return 0, err
  }

  return ps.pathCompletion(ctx, step.SkillPathID)
}

func (ps *progressService) pathCompletion(ctx context.Context, pathID uuid.UUID) (int, error) {
  steps, err := ps.pathStepRepo.GetBySkillPathIDs(ctx, nil, []uuid.UUID{pathID})
  if err != nil {
    return 0, fmt.Errorf("Failed to load sibling steps: %w", err)
  }
  if len(steps) == 0 {
    return 0, nil
  }
  stepIDs := make([]uuid.UUID, 0, len(steps))
  for _, s := range steps {
    stepIDs = append(stepIDs, s.ID)
  }
  progressRows, err := ps.progressRepo.GetByStepIDs(ctx, nil, stepIDs)
  if err != nil {
    return 0, fmt.Errorf("Failed to load progress rows: %w", err)
  }
  progressByStep := make(map[uuid.UUID]*types.Progress, len(progressRows))
  for _, p := range progressRows {
    progressByStep[p.StepID] = p
  }
  for _, s := range steps {
    s.Progress = progressByStep[s.ID]
  }
  return completionPercentage(steps), nil
}

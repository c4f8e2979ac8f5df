package services

import (
  "context"
  "fmt"
  "sort"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

// PathSummary pairs a stored path with its completion percentage for list
// views.
type PathSummary struct {
  Path                 *types.SkillPath `json:"path"`
  CompletionPercentage int              `json:"completion_percentage"`
}

// MilestoneGroup is a run of steps headed by the milestone step that opens
// it. The group before the first milestone has a nil Milestone.
type MilestoneGroup struct {
  Milestone *types.PathStep   `json:"milestone"`
  Steps     []*types.PathStep `json:"steps"`
}

type PathDetail struct {
  Path                 *types.SkillPath  `json:"path"`
  CompletionPercentage int               `json:"completion_percentage"`
  MilestoneGroups      []*MilestoneGroup `json:"milestone_groups"`
}

type PathService interface {
  ListPaths(ctx context.Context, userID uuid.UUID) ([]*PathSummary, error)
  GetPathDetail(ctx context.Context, userID uuid.UUID, pathID uuid.UUID) (*PathDetail, error)
  DeletePath(ctx context.Context, userID uuid.UUID, pathID uuid.UUID) error
}

type pathService struct {
  db  *gorm.DB
  log *logger.Logger

  skillPathRepo    repos.SkillPathRepo
  pathStepRepo     repos.PathStepRepo
  progressRepo     repos.ProgressRepo
  resourceRepo     repos.ResourceRepo
  stepResourceRepo repos.StepResourceRepo
}

func NewPathService(
  db *gorm.DB,
  baseLog *logger.Logger,
  skillPathRepo repos.SkillPathRepo,
  pathStepRepo repos.PathStepRepo,
  progressRepo repos.ProgressRepo,
  resourceRepo repos.ResourceRepo,
  stepResourceRepo repos.StepResourceRepo,
) PathService {
  return &pathService{
    db:               db,
    log:              baseLog.With("service", "PathService"),
    skillPathRepo:    skillPathRepo,
    pathStepRepo:     pathStepRepo,
    progressRepo:     progressRepo,
    resourceRepo:     resourceRepo,
    stepResourceRepo: stepResourceRepo,
  }
}

func (ps *pathService) ListPaths(ctx context.Context, userID uuid.UUID) ([]*PathSummary, error) {
  paths, err := ps.skillPathRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list paths: %w", err)
  }

  summaries := make([]*PathSummary, 0, len(paths))
  for _, path := range paths {
    steps, err := ps.loadSteps(ctx, path.ID)
    if err != nil {
      return nil, err
    }
    path.Steps = steps
    summaries = append(summaries, &PathSummary{
      Path:                 path,
      CompletionPercentage: completionPercentage(steps),
    })
  }
  return summaries, nil
}

func (ps *pathService) GetPathDetail(ctx context.Context, userID uuid.UUID, pathID uuid.UUID) (*PathDetail, error) {
  path, err := ps.skillPathRepo.GetByIDForUser(ctx, nil, pathID, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load path: %w", err)
  }
  if path == nil {
    return nil, nil
  }

  steps, err := ps.loadSteps(ctx, path.ID)
  if err != nil {
    return nil, err
  }
  if err := ps.attachResources(ctx, steps); err != nil {
    return nil, err
  }
  path.Steps = steps

  return &PathDetail{
    Path:                 path,
    CompletionPercentage: completionPercentage(steps),
    MilestoneGroups:      groupByMilestone(steps),
  }, nil
}

func (ps *pathService) DeletePath(ctx context.Context, userID uuid.UUID, pathID uuid.UUID) error {
  path, err := ps.skillPathRepo.GetByIDForUser(ctx, nil, pathID, userID)
  if err != nil {
    return fmt.Errorf("Failed to load path: %w", err)
  }
  if path == nil {
    return fmt.Errorf("Path not found")
  }
  // Children are removed explicitly; catalog resources stay because other
  // paths may reference them.
  return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    steps, err := ps.pathStepRepo.GetBySkillPathIDs(ctx, tx, []uuid.UUID{path.ID})
    if err != nil {
      return fmt.Errorf("Failed to load steps for delete: %w", err)
    }
    stepIDs := make([]uuid.UUID, 0, len(steps))
    for _, step := range steps {
      stepIDs = append(stepIDs, step.ID)
    }
    if err := ps.stepResourceRepo.FullDeleteByStepIDs(ctx, tx, stepIDs); err != nil {
      return fmt.Errorf("Failed to delete step links: %w", err)
    }
    if err := ps.progressRepo.FullDeleteByStepIDs(ctx, tx, stepIDs); err != nil {
      return fmt.Errorf("Failed to delete progress: %w", err)
    }
    if err := ps.pathStepRepo.FullDeleteBySkillPathIDs(ctx, tx, []uuid.UUID{path.ID}); err != nil {
      return fmt.Errorf("Failed to delete steps: %w", err)
    }
    if err := ps.skillPathRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{path.ID}); err != nil {
      return fmt.Errorf("Failed to delete path: %w", err)
    }
    return nil
  })
}

// loadSteps returns the path's steps in step_number order with their
// progress rows attached.
func (ps *pathService) loadSteps(ctx context.Context, pathID uuid.UUID) ([]*types.PathStep, error) {
  steps, err := ps.pathStepRepo.GetBySkillPathIDs(ctx, nil, []uuid.UUID{pathID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load steps: %w", err)
  }
  if len(steps) == 0 {
    return steps, nil
  }

  stepIDs := make([]uuid.UUID, 0, len(steps))
  for _, step := range steps {
    stepIDs = append(stepIDs, step.ID)
  }
  progressRows, err := ps.progressRepo.GetByStepIDs(ctx, nil, stepIDs)
  if err != nil {
    return nil, fmt.Errorf("Failed to load progress: %w", err)
  }
  progressByStep := make(map[uuid.UUID]*types.Progress, len(progressRows))
  for _, p := range progressRows {
    progressByStep[p.StepID] = p
  }
  for _, step := range steps {
    step.Progress = progressByStep[step.ID]
  }
  return steps, nil
}

func (ps *pathService) attachResources(ctx context.Context, steps []*types.PathStep) error {
  if len(steps) == 0 {
    return nil
  }
  stepIDs := make([]uuid.UUID, 0, len(steps))
  for _, step := range steps {
    stepIDs = append(stepIDs, step.ID)
  }
  links, err := ps.stepResourceRepo.GetByStepIDs(ctx, nil, stepIDs)
  if err != nil {
    return fmt.Errorf("Failed to load step resources: %w", err)
  }
  if len(links) == 0 {
    return nil
  }

  resourceIDs := make([]uuid.UUID, 0, len(links))
  for _, link := range links {
    resourceIDs = append(resourceIDs, link.ResourceID)
  }
  resources, err := ps.resourceRepo.GetByIDs(ctx, nil, resourceIDs)
  if err != nil {
    return fmt.Errorf("Failed to load resources: %w", err)
  }
  resourceByID := make(map[uuid.UUID]*types.Resource, len(resources))
  for _, res := range resources {
    resourceByID[res.ID] = res
  }
  for _, link := range links {
    link.Resource = resourceByID[link.ResourceID]
  }

  linksByStep := make(map[uuid.UUID][]*types.StepResource, len(steps))
  for _, link := range links {
    linksByStep[link.StepID] = append(linksByStep[link.StepID], link)
  }
  for _, step := range steps {
    step.StepResources = linksByStep[step.ID]
  }
  return nil
}

// completionPercentage is the share of steps whose progress is done, floored
// to an int. Paths without steps report zero.
func completionPercentage(steps []*types.PathStep) int {
  if len(steps) == 0 {
    return 0
  }
  completed := 0
  for _, step := range steps {
    if step.Progress != nil && step.Progress.Status == types.ProgressStatusDone {
      completed++
    }
  }
  return int(float64(completed) / float64(len(steps)) * 100)
}

// groupByMilestone walks the steps in step_number order and opens a new group
// at every milestone step. Steps before the first milestone form a headless
// group.
func groupByMilestone(steps []*types.PathStep) []*MilestoneGroup {
  ordered := make([]*types.PathStep, len(steps))
  copy(ordered, steps)
  sort.SliceStable(ordered, func(i, j int) bool {
    return ordered[i].StepNumber < ordered[j].StepNumber
  })

  groups := make([]*MilestoneGroup, 0)
  var current *types.PathStep
  var run []*types.PathStep
  for _, step := range ordered {
    if step.Milestone && len(run) > 0 {
      groups = append(groups, &MilestoneGroup{Milestone: current, Steps: run})
      run = nil
    }
    if step.Milestone {
      current = step
    }
    run = append(run, step)
  }
  if len(run) > 0 {
    groups = append(groups, &MilestoneGroup{Milestone: current, Steps: run})
  }
  return groups
}

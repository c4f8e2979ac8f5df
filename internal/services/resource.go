package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

// ResourceInput is the admin-facing create/update payload for catalog
// entries. Title and Type are required, the rest may be empty.
type ResourceInput struct {
  Title       string `json:"title"`
  Type        string `json:"type"`
  Category    string `json:"category"`
  URL         string `json:"url"`
  Description string `json:"description"`
}

type ResourceService interface {
  ListResources(ctx context.Context) ([]*types.Resource, error)
  GetResource(ctx context.Context, id uuid.UUID) (*types.Resource, error)
  CreateResource(ctx context.Context, input ResourceInput) (*types.Resource, error)
  UpdateResource(ctx context.Context, id uuid.UUID, input ResourceInput) (*types.Resource, error)
  DeleteResource(ctx context.Context, id uuid.UUID) error
  BulkDeleteResources(ctx context.Context, ids []uuid.UUID) (int, error)
}

type resourceService struct {
  db  *gorm.DB
  log *logger.Logger

  resourceRepo     repos.ResourceRepo
  stepResourceRepo repos.StepResourceRepo
}

func NewResourceService(
  db *gorm.DB,
  baseLog *logger.Logger,
  resourceRepo repos.ResourceRepo,
  stepResourceRepo repos.StepResourceRepo,
) ResourceService {
  return &resourceService{
    db:               db,
    log:              baseLog.With("service", "ResourceService"),
    resourceRepo:     resourceRepo,
    stepResourceRepo: stepResourceRepo,
  }
}

func (rs *resourceService) ListResources(ctx context.Context) ([]*types.Resource, error) {
  resources, err := rs.resourceRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list resources: %w", err)
  }
  return resources, nil
}

func (rs *resourceService) GetResource(ctx context.Context, id uuid.UUID) (*types.Resource, error) {
  resources, err := rs.resourceRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("Failed to load resource: %w", err)
  }
  if len(resources) == 0 {
    return nil, nil
  }
  return resources[0], nil
}

func validateResourceInput(input ResourceInput) error {
  if strings.TrimSpace(input.Title) == "" {
    return fmt.Errorf("Resource title is required")
  }
  if strings.TrimSpace(input.Type) == "" {
    return fmt.Errorf("Resource type is required")
  }
  return nil
}

func (rs *resourceService) CreateResource(ctx context.Context, input ResourceInput) (*types.Resource, error) {
  if err := validateResourceInput(input); err != nil {
    return nil, err
  }
  resource := &types.Resource{
    ID:          uuid.New(),
    Title:       input.Title,
    Type:        input.Type,
    Category:    input.Category,
    URL:         input.URL,
    Description: input.Description,
    CreatedAt:   time.Now(),
  }
  if _, err := rs.resourceRepo.Create(ctx, nil, []*types.Resource{resource}); err != nil {
    return nil, fmt.Errorf("Failed to create resource: %w", err)
  }
  return resource, nil
}

func (rs *resourceService) UpdateResource(ctx context.Context, id uuid.UUID, input ResourceInput) (*types.Resource, error) {
  if err := validateResourceInput(input); err != nil {
    return nil, err
  }
  existing, err := rs.GetResource(ctx, id)
  if err != nil {
    return nil, err
  }
  if existing == nil {
    return nil, fmt.Errorf("Resource not found")
  }
  fields := map[string]any{
    "title":       input.Title,
    "type":        input.Type,
    "category":    input.Category,
    "url":         input.URL,
    "description": input.Description,
  }
  if err := rs.resourceRepo.UpdateFields(ctx, nil, id, fields); err != nil {
    return nil, fmt.Errorf("Failed to update resource: %w", err)
  }
  return rs.GetResource(ctx, id)
}

// DeleteResource removes a catalog entry along with its step links, so paths
// that referenced it simply lose the attachment.
func (rs *resourceService) DeleteResource(ctx context.Context, id uuid.UUID) error {
  existing, err := rs.GetResource(ctx, id)
  if err != nil {
    return err
  }
  if existing == nil {
    return fmt.Errorf("Resource not found")
  }
  return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := rs.stepResourceRepo.FullDeleteByResourceIDs(ctx, tx, []uuid.UUID{id}); err != nil {
      return fmt.Errorf("Failed to delete resource links: %w", err)
    }
    if err := rs.resourceRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
      return fmt.Errorf("Failed to delete resource: %w", err)
    }
    return nil
  })
}

func (rs *resourceService) BulkDeleteResources(ctx context.Context, ids []uuid.UUID) (int, error) {
  if len(ids) == 0 {
    return 0, fmt.Errorf("No resources selected for deletion")
  }
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := rs.stepResourceRepo.FullDeleteByResourceIDs(ctx, tx, ids); err != nil {
      return fmt.Errorf("Failed to delete resource links: %w", err)
    }
    if err := rs.resourceRepo.FullDeleteByIDs(ctx, tx, ids); err != nil {
      return fmt.Errorf("Failed to delete resources: %w", err)
    }
    return nil
  })
  if err != nil {
    return 0, err
  }
  return len(ids), nil
}

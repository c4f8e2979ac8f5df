package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/types"
)

type IngestionErrorKind string

const (
  IngestionErrorInvalidShape      IngestionErrorKind = "invalid_shape"
  IngestionErrorPersistenceFailed IngestionErrorKind = "persistence_failed"
)

type IngestionError struct {
  Kind   IngestionErrorKind
  Reason string
}

func (e *IngestionError) Error() string {
  return fmt.Sprintf("ingestion error (%s): %s", e.Kind, e.Reason)
}

// PathGenerationService runs the full ingestion pipeline: build the request,
// call the external client, substitute the synthetic plan when the call
// fails or its document is shape-invalid, and materialize the accepted
// document. The returned
// bool reports whether the synthetic fallback was used; that advisory is the
// only outside signal of the fallback, the persisted path carries no marker
// beyond the raw stored document.
type PathGenerationService interface {
  GeneratePath(ctx context.Context, userID uuid.UUID, constraints PathConstraints) (*types.SkillPath, bool, error)
}

type pathGenerationService struct {
  db  *gorm.DB
  log *logger.Logger

  planClient PlanClient

  skillPathRepo    repos.SkillPathRepo
  pathStepRepo     repos.PathStepRepo
  progressRepo     repos.ProgressRepo
  resourceRepo     repos.ResourceRepo
  stepResourceRepo repos.StepResourceRepo
}

func NewPathGenerationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  planClient PlanClient,
  skillPathRepo repos.SkillPathRepo,
  pathStepRepo repos.PathStepRepo,
  progressRepo repos.ProgressRepo,
  resourceRepo repos.ResourceRepo,
  stepResourceRepo repos.StepResourceRepo,
) PathGenerationService {
  return &pathGenerationService{
    db:               db,
    log:              baseLog.With("service", "PathGenerationService"),
    planClient:       planClient,
    skillPathRepo:    skillPathRepo,
    pathStepRepo:     pathStepRepo,
    progressRepo:     progressRepo,
    resourceRepo:     resourceRepo,
    stepResourceRepo: stepResourceRepo,
  }
}

func (pgs *pathGenerationService) GeneratePath(ctx context.Context, userID uuid.UUID, constraints PathConstraints) (*types.SkillPath, bool, error) {
  prompt := BuildPathPrompt(constraints)

  doc, genFail := pgs.planClient.Generate(ctx, prompt)
  usedFallback := false
  if genFail != nil {
    // Unconditional fallback: no retry, no distinction between transient
    // and permanent failures.
    pgs.log.Warn("External generation failed, using synthetic plan",
      "kind", string(genFail.Kind),
      "reason", genFail.Reason,
      "user_id", userID,
    )
    if genFail.Kind == GenerationFailureMalformedOutput {
      pgs.log.Debug("Raw malformed generation output", "raw", genFail.RawText)
    }
    doc = SynthesizePlan(constraints)
    usedFallback = true
  }

  if !usedFallback {
    if reason := planProblem(doc); reason != "" {
      pgs.log.Warn("External plan unusable, using synthetic plan",
        "reason", reason,
        "user_id", userID,
      )
      doc = SynthesizePlan(constraints)
      usedFallback = true
    }
  }

  if reason := planProblem(doc); reason != "" {
    // Only reachable if the synthetic generator itself is broken; no writes.
    pgs.log.Error("Plan document failed shape validation, aborting ingestion",
      "reason", reason,
      "used_fallback", usedFallback,
      "user_id", userID,
    )
    return nil, usedFallback, &IngestionError{Kind: IngestionErrorInvalidShape, Reason: reason}
  }

  plan := DecodePlanDocument(doc)

  path, mErr := pgs.materialize(ctx, userID, constraints, doc, plan)
  if mErr != nil {
    pgs.log.Error("Plan materialization failed, rolled back", "error", mErr, "user_id", userID)
    return nil, usedFallback, &IngestionError{Kind: IngestionErrorPersistenceFailed, Reason: mErr.Error()}
  }

  pgs.log.Info("Learning path materialized",
    "skill_path_id", path.ID,
    "steps", len(plan.Steps),
    "used_fallback", usedFallback,
  )
  return path, usedFallback, nil
}

// planProblem reports why a document cannot be materialized: a shape
// violation, or a step list that validates but is empty. A persisted path
// must carry at least one step.
func planProblem(doc any) string {
  if vErr := ValidatePlanShape(doc); vErr != nil {
    return vErr.Reason
  }
  root, _ := doc.(map[string]any)
  if steps, _ := root["steps"].([]any); len(steps) == 0 {
    return "Plan has no steps"
  }
  return ""
}

// materialize converts a validated plan document into persistent entities in
// one transaction. Steps are created in document order; each step gets its
// Progress row; resources with a non-empty url are resolved against the
// shared catalog, url-less ones are skipped entirely. Any failure rolls back
// every staged write.
func (pgs *pathGenerationService) materialize(ctx context.Context, userID uuid.UUID, constraints PathConstraints, doc any, plan PlanDocument) (*types.SkillPath, error) {
  raw, err := json.Marshal(doc)
  if err != nil {
    return nil, fmt.Errorf("encode accepted document: %w", err)
  }

  var path *types.SkillPath
  err = pgs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    now := time.Now()
    path = &types.SkillPath{
      ID:               uuid.New(),
      UserID:           userID,
      Title:            plan.Title,
      Description:      plan.Description,
      CareerGoal:       constraints.CareerGoal,
      CurrentLevel:     constraints.CurrentLevel,
      Interests:        constraints.Interests,
      WeeklyHours:      constraints.WeeklyHours,
      TimelineWeeks:    constraints.TimelineWeeks,
      GeneratedContent: datatypes.JSON(raw),
      CreatedAt:        now,
      UpdatedAt:        now,
    }
    if _, err := pgs.skillPathRepo.Create(ctx, tx, []*types.SkillPath{path}); err != nil {
      return fmt.Errorf("create skill path: %w", err)
    }

    for _, stepDoc := range plan.Steps {
      step := &types.PathStep{
        ID:            uuid.New(),
        SkillPathID:   path.ID,
        StepNumber:    stepDoc.StepNumber,
        Title:         stepDoc.Title,
        Description:   stepDoc.Description,
        DurationWeeks: stepDoc.DurationWeeks,
        Milestone:     stepDoc.Milestone,
        CreatedAt:     now,
      }
      if _, err := pgs.pathStepRepo.Create(ctx, tx, []*types.PathStep{step}); err != nil {
        return fmt.Errorf("create step %d: %w", stepDoc.StepNumber, err)
      }

      progress := &types.Progress{
        ID:        uuid.New(),
        StepID:    step.ID,
        Status:    types.ProgressStatusTodo,
        UpdatedAt: now,
      }
      if _, err := pgs.progressRepo.Create(ctx, tx, []*types.Progress{progress}); err != nil {
        return fmt.Errorf("create progress for step %d: %w", stepDoc.StepNumber, err)
      }
      step.Progress = progress

      for _, resDoc := range stepDoc.Resources {
        if strings.TrimSpace(resDoc.URL) == "" {
          // Unlinkable entries stay out of the catalog; the text still
          // survives in the stored raw document.
          continue
        }
        resourceType := resDoc.Type
        if resourceType == "" {
          resourceType = "article"
        }
        resource, err := pgs.resourceRepo.FindOrCreateByURL(ctx, tx, &types.Resource{
          ID:          uuid.New(),
          Title:       resDoc.Title,
          URL:         resDoc.URL,
          Type:        resourceType,
          Description: resDoc.Description,
          Category:    constraints.CareerGoal,
          CreatedAt:   now,
        })
        if err != nil {
          return fmt.Errorf("resolve resource %q: %w", resDoc.URL, err)
        }

        link := &types.StepResource{
          ID:         uuid.New(),
          StepID:     step.ID,
          ResourceID: resource.ID,
        }
        if _, err := pgs.stepResourceRepo.Create(ctx, tx, []*types.StepResource{link}); err != nil {
          return fmt.Errorf("link resource %q to step %d: %w", resDoc.URL, stepDoc.StepNumber, err)
        }
      }

      path.Steps = append(path.Steps, step)
    }

    return nil
  })
  if err != nil {
    return nil, err
  }
  return path, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/skillpath/backend/internal/types"
)

var testConstraints = PathConstraints{
	CareerGoal:    "Data Engineer",
	CurrentLevel:  "beginner",
	Interests:     "pipelines, sql",
	WeeklyHours:   10,
	TimelineWeeks: 12,
}

func TestGeneratePathFallbackMaterializes(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGenerationService(t, db, &fakePlanClient{
		fail: &GenerationFailure{Kind: GenerationFailureRateLimited, Reason: "429"},
	})

	userID := uuid.New()
	path, usedFallback, err := svc.GeneratePath(context.Background(), userID, testConstraints)
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if !usedFallback {
		t.Fatalf("expected fallback advisory")
	}
	if path == nil || path.UserID != userID {
		t.Fatalf("path: %+v", path)
	}
	if len(path.GeneratedContent) == 0 {
		t.Fatalf("raw document not stored")
	}

	var stepCount, progressCount, resourceCount, linkCount int64
	if err := db.Model(&types.PathStep{}).Count(&stepCount).Error; err != nil {
		t.Fatalf("count steps: %v", err)
	}
	if err := db.Model(&types.Progress{}).Count(&progressCount).Error; err != nil {
		t.Fatalf("count progress: %v", err)
	}
	if err := db.Model(&types.Resource{}).Count(&resourceCount).Error; err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if err := db.Model(&types.StepResource{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if stepCount != 5 || progressCount != 5 || resourceCount != 5 || linkCount != 5 {
		t.Fatalf("counts: steps=%d progress=%d resources=%d links=%d", stepCount, progressCount, resourceCount, linkCount)
	}

	var progressRows []*types.Progress
	if err := db.Find(&progressRows).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	for _, p := range progressRows {
		if p.Status != types.ProgressStatusTodo {
			t.Fatalf("progress status: got %q", p.Status)
		}
	}

	var resources []*types.Resource
	if err := db.Find(&resources).Error; err != nil {
		t.Fatalf("load resources: %v", err)
	}
	for _, r := range resources {
		if r.Category != testConstraints.CareerGoal {
			t.Fatalf("resource category: got %q want %q", r.Category, testConstraints.CareerGoal)
		}
	}
}

func TestGeneratePathDeduplicatesResourcesByURL(t *testing.T) {
	db := newTestDB(t)
	shared := map[string]any{
		"title": "Shared Resource",
		"url":   "https://example.com/shared",
		"type":  "course",
	}
	doc := planDoc(
		stepDoc(1, shared),
		stepDoc(2, shared),
	)
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: doc})

	if _, usedFallback, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints); err != nil || usedFallback {
		t.Fatalf("GeneratePath: err=%v fallback=%v", err, usedFallback)
	}

	var resourceCount, linkCount int64
	if err := db.Model(&types.Resource{}).Count(&resourceCount).Error; err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if err := db.Model(&types.StepResource{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if resourceCount != 1 {
		t.Fatalf("resource rows: got %d want 1", resourceCount)
	}
	if linkCount != 2 {
		t.Fatalf("link rows: got %d want 2", linkCount)
	}
}

func TestGeneratePathSkipsResourcesWithoutURL(t *testing.T) {
	db := newTestDB(t)
	doc := planDoc(stepDoc(1,
		map[string]any{"title": "No URL", "url": ""},
		map[string]any{"title": "Whitespace URL", "url": "   "},
	))
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: doc})

	path, _, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints)
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}

	var resourceCount, linkCount int64
	if err := db.Model(&types.Resource{}).Count(&resourceCount).Error; err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if err := db.Model(&types.StepResource{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if resourceCount != 0 || linkCount != 0 {
		t.Fatalf("url-less resources leaked: resources=%d links=%d", resourceCount, linkCount)
	}
	if len(path.GeneratedContent) == 0 {
		t.Fatalf("raw document should still be stored")
	}
}

func TestGeneratePathFallsBackOnInvalidShape(t *testing.T) {
	db := newTestDB(t)
	// Parses fine but fails shape validation (missing steps), which counts
	// as unusable external output.
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: map[string]any{
		"title":       "Half a Plan",
		"description": "no steps here",
	}})

	path, usedFallback, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints)
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if !usedFallback {
		t.Fatalf("expected fallback on shape-invalid external document")
	}
	if path == nil || len(path.Steps) != 5 {
		t.Fatalf("synthetic plan not materialized: %+v", path)
	}

	var pathCount int64
	if err := db.Model(&types.SkillPath{}).Count(&pathCount).Error; err != nil {
		t.Fatalf("count paths: %v", err)
	}
	if pathCount != 1 {
		t.Fatalf("path rows: got %d want 1", pathCount)
	}
}

func TestGeneratePathFallsBackOnEmptySteps(t *testing.T) {
	db := newTestDB(t)
	// Shape-valid but useless: a persisted path must carry at least one step.
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: map[string]any{
		"title":       "Hollow Plan",
		"description": "nothing to do",
		"steps":       []any{},
	}})

	path, usedFallback, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints)
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if !usedFallback {
		t.Fatalf("expected fallback on empty step list")
	}
	if path == nil || len(path.Steps) != 5 {
		t.Fatalf("synthetic plan not materialized: %+v", path)
	}

	var stepCount int64
	if err := db.Model(&types.PathStep{}).Count(&stepCount).Error; err != nil {
		t.Fatalf("count steps: %v", err)
	}
	if stepCount != 5 {
		t.Fatalf("step rows: got %d want 5", stepCount)
	}
}

func TestGeneratePathDefaultsResourceType(t *testing.T) {
	db := newTestDB(t)
	doc := planDoc(stepDoc(1,
		map[string]any{"title": "Untyped", "url": "https://example.com/untyped"},
	))
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: doc})

	if _, _, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints); err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}

	var resource types.Resource
	if err := db.First(&resource).Error; err != nil {
		t.Fatalf("load resource: %v", err)
	}
	if resource.Type != "article" {
		t.Fatalf("resource type: got %q want %q", resource.Type, "article")
	}
}

func TestGeneratePathRollsBackOnPersistenceFailure(t *testing.T) {
	db := newTestDB(t)
	// Dropping the progress table makes the third write of the transaction
	// fail, which must discard the path and step writes too.
	if err := db.Migrator().DropTable(&types.Progress{}); err != nil {
		t.Fatalf("drop progress table: %v", err)
	}
	svc := newTestGenerationService(t, db, &fakePlanClient{doc: planDoc(stepDoc(1))})

	_, _, err := svc.GeneratePath(context.Background(), uuid.New(), testConstraints)
	if err == nil {
		t.Fatalf("expected persistence failure")
	}
	var ingErr *IngestionError
	if !errors.As(err, &ingErr) || ingErr.Kind != IngestionErrorPersistenceFailed {
		t.Fatalf("want persistence_failed, got %+v", err)
	}

	var pathCount, stepCount int64
	if err := db.Model(&types.SkillPath{}).Count(&pathCount).Error; err != nil {
		t.Fatalf("count paths: %v", err)
	}
	if err := db.Model(&types.PathStep{}).Count(&stepCount).Error; err != nil {
		t.Fatalf("count steps: %v", err)
	}
	if pathCount != 0 || stepCount != 0 {
		t.Fatalf("partial writes survived rollback: paths=%d steps=%d", pathCount, stepCount)
	}
}

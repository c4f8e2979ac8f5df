package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/skillpath/backend/internal/repos"
	"github.com/skillpath/backend/internal/types"
)

func TestGroupByMilestone(t *testing.T) {
	mk := func(n int, milestone bool) *types.PathStep {
		return &types.PathStep{ID: uuid.New(), StepNumber: n, Milestone: milestone}
	}
	steps := []*types.PathStep{mk(1, false), mk(2, true), mk(3, false), mk(4, true), mk(5, true)}

	groups := groupByMilestone(steps)
	if len(groups) != 3 {
		t.Fatalf("groups: got %d want 3", len(groups))
	}
	if groups[0].Milestone != nil {
		t.Fatalf("first group should be headless")
	}
	if len(groups[0].Steps) != 1 || groups[0].Steps[0].StepNumber != 1 {
		t.Fatalf("first group steps: %+v", groups[0].Steps)
	}
	if groups[1].Milestone == nil || groups[1].Milestone.StepNumber != 2 {
		t.Fatalf("second group head: %+v", groups[1].Milestone)
	}
	if len(groups[1].Steps) != 2 {
		t.Fatalf("second group steps: got %d want 2", len(groups[1].Steps))
	}
	if groups[2].Milestone == nil || groups[2].Milestone.StepNumber != 4 {
		t.Fatalf("third group head: %+v", groups[2].Milestone)
	}
	if len(groups[2].Steps) != 2 {
		t.Fatalf("third group steps: got %d want 2", len(groups[2].Steps))
	}
}

func TestCompletionPercentage(t *testing.T) {
	done := &types.Progress{Status: types.ProgressStatusDone}
	todo := &types.Progress{Status: types.ProgressStatusTodo}

	if got := completionPercentage(nil); got != 0 {
		t.Fatalf("empty path: got %d", got)
	}
	steps := []*types.PathStep{
		{Progress: done},
		{Progress: todo},
		{Progress: nil},
	}
	if got := completionPercentage(steps); got != 33 {
		t.Fatalf("1 of 3 done: got %d want 33", got)
	}
}

func TestPathServiceListAndDetail(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	gen := newTestGenerationService(t, db, &fakePlanClient{
		fail: &GenerationFailure{Kind: GenerationFailureMissingCredentials, Reason: "no key"},
	})
	svc := NewPathService(db, log,
		repos.NewSkillPathRepo(db, log),
		repos.NewPathStepRepo(db, log),
		repos.NewProgressRepo(db, log),
		repos.NewResourceRepo(db, log),
		repos.NewStepResourceRepo(db, log),
	)

	userID := uuid.New()
	path, _, err := gen.GeneratePath(context.Background(), userID, testConstraints)
	if err != nil {
		t.Fatalf("seed path: %v", err)
	}

	summaries, err := svc.ListPaths(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListPaths: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries: got %d", len(summaries))
	}
	if summaries[0].CompletionPercentage != 0 {
		t.Fatalf("fresh path completion: got %d", summaries[0].CompletionPercentage)
	}

	detail, err := svc.GetPathDetail(context.Background(), userID, path.ID)
	if err != nil {
		t.Fatalf("GetPathDetail: %v", err)
	}
	if detail == nil {
		t.Fatalf("detail missing")
	}
	if len(detail.Path.Steps) != 5 {
		t.Fatalf("detail steps: got %d", len(detail.Path.Steps))
	}
	// Fallback milestones sit at steps 2, 4 and 5.
	if len(detail.MilestoneGroups) != 4 {
		t.Fatalf("milestone groups: got %d want 4", len(detail.MilestoneGroups))
	}
	for _, step := range detail.Path.Steps {
		if step.Progress == nil {
			t.Fatalf("step %d missing progress", step.StepNumber)
		}
		if len(step.StepResources) != 1 || step.StepResources[0].Resource == nil {
			t.Fatalf("step %d missing resource attachment", step.StepNumber)
		}
	}

	// Other users cannot see the path.
	foreign, err := svc.GetPathDetail(context.Background(), uuid.New(), path.ID)
	if err != nil {
		t.Fatalf("foreign detail: %v", err)
	}
	if foreign != nil {
		t.Fatalf("path leaked across users")
	}
}

func TestPathServiceDelete(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	gen := newTestGenerationService(t, db, &fakePlanClient{doc: planDoc(
		stepDoc(1, map[string]any{"title": "R", "url": "https://example.com/r"}),
	)})
	svc := NewPathService(db, log,
		repos.NewSkillPathRepo(db, log),
		repos.NewPathStepRepo(db, log),
		repos.NewProgressRepo(db, log),
		repos.NewResourceRepo(db, log),
		repos.NewStepResourceRepo(db, log),
	)

	userID := uuid.New()
	path, _, err := gen.GeneratePath(context.Background(), userID, testConstraints)
	if err != nil {
		t.Fatalf("seed path: %v", err)
	}

	if err := svc.DeletePath(context.Background(), uuid.New(), path.ID); err == nil {
		t.Fatalf("foreign delete should fail")
	}
	if err := svc.DeletePath(context.Background(), userID, path.ID); err != nil {
		t.Fatalf("DeletePath: %v", err)
	}

	var pathCount, stepCount, progressCount, linkCount, resourceCount int64
	if err := db.Model(&types.SkillPath{}).Count(&pathCount).Error; err != nil {
		t.Fatalf("count paths: %v", err)
	}
	if err := db.Model(&types.PathStep{}).Count(&stepCount).Error; err != nil {
		t.Fatalf("count steps: %v", err)
	}
	if err := db.Model(&types.Progress{}).Count(&progressCount).Error; err != nil {
		t.Fatalf("count progress: %v", err)
	}
	if err := db.Model(&types.StepResource{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if err := db.Model(&types.Resource{}).Count(&resourceCount).Error; err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if pathCount != 0 || stepCount != 0 || progressCount != 0 || linkCount != 0 {
		t.Fatalf("children survived delete: paths=%d steps=%d progress=%d links=%d", pathCount, stepCount, progressCount, linkCount)
	}
	if resourceCount != 1 {
		t.Fatalf("catalog resources must survive path deletion, got %d", resourceCount)
	}
}

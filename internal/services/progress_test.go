package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/skillpath/backend/internal/repos"
	"github.com/skillpath/backend/internal/types"
)

func TestUpdateStepProgress(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	gen := newTestGenerationService(t, db, &fakePlanClient{
		fail: &GenerationFailure{Kind: GenerationFailureServiceError, Reason: "down"},
	})
	svc := NewProgressService(db, log, repos.NewPathStepRepo(db, log), repos.NewProgressRepo(db, log))

	userID := uuid.New()
	path, _, err := gen.GeneratePath(context.Background(), userID, testConstraints)
	if err != nil {
		t.Fatalf("seed path: %v", err)
	}
	if len(path.Steps) != 5 {
		t.Fatalf("seed steps: got %d", len(path.Steps))
	}
	step := path.Steps[0]

	completion, err := svc.UpdateStepProgress(context.Background(), userID, step.ID, types.ProgressStatusDone)
	if err != nil {
		t.Fatalf("UpdateStepProgress: %v", err)
	}
	if completion != 20 {
		t.Fatalf("completion: got %d want 20", completion)
	}

	var row types.Progress
	if err := db.Where("step_id = ?", step.ID).First(&row).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if row.Status != types.ProgressStatusDone {
		t.Fatalf("status: got %q", row.Status)
	}
	if row.CompletedAt == nil {
		t.Fatalf("completed_at not stamped")
	}

	// Moving back off done keeps the row but leaves completed_at alone.
	completion, err = svc.UpdateStepProgress(context.Background(), userID, step.ID, types.ProgressStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStepProgress back: %v", err)
	}
	if completion != 0 {
		t.Fatalf("completion after revert: got %d want 0", completion)
	}
}

func TestUpdateStepProgressRejectsInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	svc := NewProgressService(db, log, repos.NewPathStepRepo(db, log), repos.NewProgressRepo(db, log))

	if _, err := svc.UpdateStepProgress(context.Background(), uuid.New(), uuid.New(), "finished"); err == nil {
		t.Fatalf("expected invalid status error")
	}
}

func TestUpdateStepProgressRejectsForeignStep(t *testing.T) {
	db := newTestDB(t)
	log := testLogger(t)
	gen := newTestGenerationService(t, db, &fakePlanClient{doc: planDoc(stepDoc(1))})
	svc := NewProgressService(db, log, repos.NewPathStepRepo(db, log), repos.NewProgressRepo(db, log))

	owner := uuid.New()
	path, _, err := gen.GeneratePath(context.Background(), owner, testConstraints)
	if err != nil {
		t.Fatalf("seed path: %v", err)
	}

	other := uuid.New()
	if _, err := svc.UpdateStepProgress(context.Background(), other, path.Steps[0].ID, types.ProgressStatusDone); err == nil {
		t.Fatalf("expected ownership rejection")
	}
}

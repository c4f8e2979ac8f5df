package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/skillpath/backend/internal/repos"
	"github.com/skillpath/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.SkillPath{},
		&types.PathStep{},
		&types.Resource{},
		&types.StepResource{},
		&types.Progress{},
		&types.Feedback{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fakePlanClient struct {
	doc  any
	fail *GenerationFailure
}

func (f *fakePlanClient) Generate(ctx context.Context, prompt PathPrompt) (any, *GenerationFailure) {
	return f.doc, f.fail
}

func newTestGenerationService(t *testing.T, db *gorm.DB, client PlanClient) PathGenerationService {
	t.Helper()
	log := testLogger(t)
	return NewPathGenerationService(
		db,
		log,
		client,
		repos.NewSkillPathRepo(db, log),
		repos.NewPathStepRepo(db, log),
		repos.NewProgressRepo(db, log),
		repos.NewResourceRepo(db, log),
		repos.NewStepResourceRepo(db, log),
	)
}

func planDoc(steps ...map[string]any) map[string]any {
	anySteps := make([]any, 0, len(steps))
	for _, s := range steps {
		anySteps = append(anySteps, s)
	}
	return map[string]any{
		"title":       "Test Plan",
		"description": "A plan for testing",
		"steps":       anySteps,
	}
}

func stepDoc(number int, resources ...map[string]any) map[string]any {
	anyResources := make([]any, 0, len(resources))
	for _, r := range resources {
		anyResources = append(anyResources, r)
	}
	return map[string]any{
		"step_number":    number,
		"title":          "Step",
		"description":    "Step description",
		"duration_weeks": 2,
		"milestone":      number%2 == 0,
		"resources":      anyResources,
	}
}

package services

import (
	"testing"
)

func TestSynthesizePlanPassesShapeValidation(t *testing.T) {
	doc := SynthesizePlan(PathConstraints{
		CareerGoal:    "Data Engineer",
		CurrentLevel:  "beginner",
		Interests:     "pipelines",
		WeeklyHours:   10,
		TimelineWeeks: 12,
	})
	if err := ValidatePlanShape(doc); err != nil {
		t.Fatalf("synthetic plan rejected by validator: %+v", err)
	}
}

func TestSynthesizePlanStructure(t *testing.T) {
	plan := DecodePlanDocument(SynthesizePlan(PathConstraints{
		CareerGoal:    "Backend Developer",
		CurrentLevel:  "beginner",
		Interests:     "apis",
		WeeklyHours:   8,
		TimelineWeeks: 24,
	}))

	if len(plan.Steps) != 5 {
		t.Fatalf("steps: got %d want 5", len(plan.Steps))
	}
	if len(plan.Milestones) != 4 {
		t.Fatalf("milestone strings: got %d want 4", len(plan.Milestones))
	}

	wantDurations := []int{4, 6, 6, 4, 4}
	wantMilestones := []bool{false, true, false, true, true}
	for i, step := range plan.Steps {
		if step.StepNumber != i+1 {
			t.Fatalf("step %d: step_number got %d", i, step.StepNumber)
		}
		if step.DurationWeeks != wantDurations[i] {
			t.Fatalf("step %d: duration got %d want %d", i+1, step.DurationWeeks, wantDurations[i])
		}
		if step.Milestone != wantMilestones[i] {
			t.Fatalf("step %d: milestone got %v want %v", i+1, step.Milestone, wantMilestones[i])
		}
		if len(step.Resources) != 1 {
			t.Fatalf("step %d: resources got %d want 1", i+1, len(step.Resources))
		}
		if step.Resources[0].URL == "" {
			t.Fatalf("step %d: resource url empty", i+1)
		}
	}
}

func TestSynthesizePlanDurationFloors(t *testing.T) {
	plan := DecodePlanDocument(SynthesizePlan(PathConstraints{
		CareerGoal:    "Designer",
		CurrentLevel:  "beginner",
		Interests:     "ux",
		WeeklyHours:   5,
		TimelineWeeks: 6,
	}))
	wantDurations := []int{2, 3, 3, 2, 2}
	for i, step := range plan.Steps {
		if step.DurationWeeks != wantDurations[i] {
			t.Fatalf("step %d: duration got %d want %d", i+1, step.DurationWeeks, wantDurations[i])
		}
	}
}

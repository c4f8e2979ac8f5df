package services

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractJSONBlockFencedJSON(t *testing.T) {
	text := "Here is your roadmap:\n```json\n{\"title\": \"x\"}\n```\nGood luck!"
	got := ExtractJSONBlock(text)
	if got != `{"title": "x"}` {
		t.Fatalf("fenced json block: got %q", got)
	}
}

func TestExtractJSONBlockPlainFence(t *testing.T) {
	text := "```\n{\"title\": \"y\"}\n```"
	got := ExtractJSONBlock(text)
	if got != `{"title": "y"}` {
		t.Fatalf("plain fence: got %q", got)
	}
}

func TestExtractJSONBlockRawText(t *testing.T) {
	text := "  {\"title\": \"z\"}  "
	got := ExtractJSONBlock(text)
	if got != `{"title": "z"}` {
		t.Fatalf("raw text: got %q", got)
	}
}

func TestExtractJSONBlockUsesLastClosingFence(t *testing.T) {
	text := "```json\n{\"note\": \"contains ``` inside\"}\n```"
	got := ExtractJSONBlock(text)
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Fatalf("inner fence handling: got %q", got)
	}
}

func mustParse(t *testing.T, s string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestValidatePlanShapeRootNotObject(t *testing.T) {
	err := ValidatePlanShape(mustParse(t, `["not", "an", "object"]`))
	if err == nil || err.Kind != SchemaErrorWrongShape {
		t.Fatalf("want wrong_shape, got %+v", err)
	}
	if err.Reason != "Root must be an object" {
		t.Fatalf("reason: got %q", err.Reason)
	}
}

func TestValidatePlanShapeMissingFields(t *testing.T) {
	cases := []struct {
		doc    string
		reason string
	}{
		{`{"description": "d", "steps": []}`, "Missing required field: title"},
		{`{"title": "t", "steps": []}`, "Missing required field: description"},
		{`{"title": "t", "description": "d"}`, "Missing required field: steps"},
	}
	for _, tc := range cases {
		err := ValidatePlanShape(mustParse(t, tc.doc))
		if err == nil || err.Kind != SchemaErrorMissingField {
			t.Fatalf("doc %s: want missing_field, got %+v", tc.doc, err)
		}
		if err.Reason != tc.reason {
			t.Fatalf("doc %s: reason got %q want %q", tc.doc, err.Reason, tc.reason)
		}
	}
}

func TestValidatePlanShapeStepsNotArray(t *testing.T) {
	err := ValidatePlanShape(mustParse(t, `{"title": "t", "description": "d", "steps": "nope"}`))
	if err == nil || err.Kind != SchemaErrorWrongShape || err.Reason != "Steps must be an array" {
		t.Fatalf("want Steps must be an array, got %+v", err)
	}
}

func TestValidatePlanShapeStepMissingField(t *testing.T) {
	doc := `{"title": "t", "description": "d", "steps": [
		{"step_number": 1, "title": "s", "description": "sd"}
	]}`
	err := ValidatePlanShape(mustParse(t, doc))
	if err == nil || err.Kind != SchemaErrorMissingField || err.Reason != "Step missing required fields" {
		t.Fatalf("want Step missing required fields, got %+v", err)
	}
}

func TestValidatePlanShapeResourcesNotArray(t *testing.T) {
	doc := `{"title": "t", "description": "d", "steps": [
		{"step_number": 1, "title": "s", "description": "sd", "duration_weeks": 2, "resources": {"bad": true}}
	]}`
	err := ValidatePlanShape(mustParse(t, doc))
	if err == nil || err.Kind != SchemaErrorWrongShape || err.Reason != "Step resources must be an array" {
		t.Fatalf("want Step resources must be an array, got %+v", err)
	}
}

func TestValidatePlanShapeAcceptsValidDocument(t *testing.T) {
	doc := `{"title": "t", "description": "d", "steps": [
		{"step_number": 1, "title": "s", "description": "sd", "duration_weeks": 2, "milestone": true,
			"resources": [{"title": "r", "url": "https://example.com"}]},
		{"step_number": 2, "title": "s2", "description": "sd2", "duration_weeks": 3}
	], "milestones": ["first"]}`
	if err := ValidatePlanShape(mustParse(t, doc)); err != nil {
		t.Fatalf("valid document rejected: %+v", err)
	}
}

func TestDecodePlanDocumentDefaults(t *testing.T) {
	doc := `{"title": "t", "description": "d", "steps": [
		{"step_number": 1, "title": "s", "description": "sd", "duration_weeks": "soon"}
	]}`
	plan := DecodePlanDocument(mustParse(t, doc))
	if len(plan.Steps) != 1 {
		t.Fatalf("steps: got %d", len(plan.Steps))
	}
	step := plan.Steps[0]
	if step.DurationWeeks != 1 {
		t.Fatalf("non-numeric duration should default to 1, got %d", step.DurationWeeks)
	}
	if step.Milestone {
		t.Fatalf("absent milestone should default to false")
	}
	if len(step.Resources) != 0 {
		t.Fatalf("absent resources should decode empty, got %d", len(step.Resources))
	}
}

func TestDecodePlanDocumentFull(t *testing.T) {
	doc := `{"title": "t", "description": "d", "steps": [
		{"step_number": 2, "title": "s", "description": "sd", "duration_weeks": 4, "milestone": true,
			"resources": [{"title": "r", "url": "https://example.com", "type": "course", "description": "rd"}]}
	], "milestones": ["a", "b"]}`
	plan := DecodePlanDocument(mustParse(t, doc))
	if plan.Title != "t" || plan.Description != "d" {
		t.Fatalf("header: %+v", plan)
	}
	if len(plan.Milestones) != 2 {
		t.Fatalf("milestones: got %d", len(plan.Milestones))
	}
	step := plan.Steps[0]
	if step.StepNumber != 2 || step.DurationWeeks != 4 || !step.Milestone {
		t.Fatalf("step: %+v", step)
	}
	if len(step.Resources) != 1 || step.Resources[0].URL != "https://example.com" {
		t.Fatalf("resources: %+v", step.Resources)
	}
}

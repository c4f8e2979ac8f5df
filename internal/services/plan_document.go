package services

import (
  "encoding/json"
  "fmt"
  "strings"
)

// PlanDocument is the typed intermediate representation of a generated
// roadmap. Nothing downstream of ValidatePlanShape/DecodePlanDocument touches
// the loosely-typed payload again.
type PlanDocument struct {
  Title       string         `json:"title"`
  Description string         `json:"description"`
  Steps       []StepDocument `json:"steps"`
  Milestones  []string       `json:"milestones,omitempty"`
}

type StepDocument struct {
  StepNumber    int                `json:"step_number"`
  Title         string             `json:"title"`
  Description   string             `json:"description"`
  DurationWeeks int                `json:"duration_weeks"`
  Milestone     bool               `json:"milestone"`
  Resources     []ResourceDocument `json:"resources,omitempty"`
}

type ResourceDocument struct {
  Title       string `json:"title"`
  URL         string `json:"url,omitempty"`
  Type        string `json:"type,omitempty"`
  Description string `json:"description,omitempty"`
}

type SchemaErrorKind string

const (
  SchemaErrorMissingField SchemaErrorKind = "missing_field"
  SchemaErrorWrongShape   SchemaErrorKind = "wrong_shape"
)

type SchemaError struct {
  Kind   SchemaErrorKind
  Reason string
}

func (e *SchemaError) Error() string {
  return fmt.Sprintf("schema error (%s): %s", e.Kind, e.Reason)
}

// ExtractJSONBlock pulls the structured payload out of free model text.
// Strategies tried in order: a ```json fenced block, any ``` fenced block,
// the raw text. The first match wins.
func ExtractJSONBlock(text string) string {
  if idx := strings.Index(text, "```json"); idx >= 0 {
    inner := text[idx+len("```json"):]
    if end := strings.LastIndex(inner, "```"); end >= 0 {
      inner = inner[:end]
    }
    return strings.TrimSpace(inner)
  }
  if idx := strings.Index(text, "```"); idx >= 0 {
    inner := text[idx+len("```"):]
    if end := strings.LastIndex(inner, "```"); end >= 0 {
      inner = inner[:end]
    }
    return strings.TrimSpace(inner)
  }
  return strings.TrimSpace(text)
}

// ValidatePlanShape checks the loosely-typed document against the plan
// schema. Rules run in order and stop at the first violation. The check is
// deliberately shallow: shape only, no bounds on duration_weeks and no
// step_number uniqueness.
func ValidatePlanShape(doc any) *SchemaError {
  root, ok := doc.(map[string]any)
  if !ok {
    return &SchemaError{Kind: SchemaErrorWrongShape, Reason: "Root must be an object"}
  }

  for _, field := range []string{"title", "description", "steps"} {
    if _, present := root[field]; !present {
      return &SchemaError{Kind: SchemaErrorMissingField, Reason: fmt.Sprintf("Missing required field: %s", field)}
    }
  }

  steps, ok := root["steps"].([]any)
  if !ok {
    return &SchemaError{Kind: SchemaErrorWrongShape, Reason: "Steps must be an array"}
  }

  for _, raw := range steps {
    step, ok := raw.(map[string]any)
    if !ok {
      return &SchemaError{Kind: SchemaErrorWrongShape, Reason: "Step must be an object"}
    }
    for _, field := range []string{"step_number", "title", "description", "duration_weeks"} {
      if _, present := step[field]; !present {
        return &SchemaError{Kind: SchemaErrorMissingField, Reason: "Step missing required fields"}
      }
    }
    if resources, present := step["resources"]; present {
      if _, ok := resources.([]any); !ok {
        return &SchemaError{Kind: SchemaErrorWrongShape, Reason: "Step resources must be an array"}
      }
    }
  }

  return nil
}

// DecodePlanDocument converts a shape-validated document into the typed form,
// applying the defaults the schema leaves optional (duration 1, milestone
// false). Must only be called after ValidatePlanShape.
func DecodePlanDocument(doc any) PlanDocument {
  root, _ := doc.(map[string]any)

  plan := PlanDocument{
    Title:       stringFromAny(root["title"]),
    Description: stringFromAny(root["description"]),
    Milestones:  toStringSlice(root["milestones"]),
  }

  stepsRaw, _ := root["steps"].([]any)
  plan.Steps = make([]StepDocument, 0, len(stepsRaw))
  for _, raw := range stepsRaw {
    sm, _ := raw.(map[string]any)
    step := StepDocument{
      StepNumber:    intFromAny(sm["step_number"], 0),
      Title:         stringFromAny(sm["title"]),
      Description:   stringFromAny(sm["description"]),
      DurationWeeks: intFromAny(sm["duration_weeks"], 1),
      Milestone:     boolFromAny(sm["milestone"]),
    }
    if resRaw, ok := sm["resources"].([]any); ok {
      step.Resources = make([]ResourceDocument, 0, len(resRaw))
      for _, rr := range resRaw {
        rm, ok := rr.(map[string]any)
        if !ok {
          continue
        }
        step.Resources = append(step.Resources, ResourceDocument{
          Title:       stringFromAny(rm["title"]),
          URL:         stringFromAny(rm["url"]),
          Type:        stringFromAny(rm["type"]),
          Description: stringFromAny(rm["description"]),
        })
      }
    }
    plan.Steps = append(plan.Steps, step)
  }

  return plan
}

// ---- loose-typing helpers ----

func stringFromAny(v any) string {
  if v == nil {
    return ""
  }
  if s, ok := v.(string); ok {
    return s
  }
  return fmt.Sprint(v)
}

func toStringSlice(v any) []string {
  if v == nil {
    return []string{}
  }
  a, ok := v.([]any)
  if !ok {
    if ss, ok2 := v.([]string); ok2 {
      return ss
    }
    return []string{}
  }
  out := make([]string, 0, len(a))
  for _, x := range a {
    out = append(out, fmt.Sprint(x))
  }
  return out
}

func intFromAny(v any, def int) int {
  switch t := v.(type) {
  case int:
    return t
  case float64:
    return int(t)
  case json.Number:
    i, _ := t.Int64()
    return int(i)
  default:
    return def
  }
}

func boolFromAny(v any) bool {
  b, ok := v.(bool)
  return ok && b
}

package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/skillpath/backend/internal/logger"
)

type GenerationFailureKind string

const (
  GenerationFailureMissingCredentials GenerationFailureKind = "missing_credentials"
  GenerationFailureAuthentication     GenerationFailureKind = "authentication_error"
  GenerationFailureRateLimited        GenerationFailureKind = "rate_limited"
  GenerationFailureServiceError       GenerationFailureKind = "service_error"
  GenerationFailureTransportTimeout   GenerationFailureKind = "transport_timeout"
  GenerationFailureMalformedOutput    GenerationFailureKind = "malformed_output"
)

// GenerationFailure is the typed, non-fatal result of a failed external
// generation attempt. Every kind triggers the synthetic fallback; nothing
// from the external call propagates as an unhandled fault.
type GenerationFailure struct {
  Kind    GenerationFailureKind
  Reason  string
  RawText string // populated on malformed output for diagnosis
}

func (f *GenerationFailure) Error() string {
  return fmt.Sprintf("generation failure (%s): %s", f.Kind, f.Reason)
}

// PlanClient invokes the external generative service and returns the parsed
// (still loosely-typed) plan document, or a classified failure.
type PlanClient interface {
  Generate(ctx context.Context, prompt PathPrompt) (any, *GenerationFailure)
}

type planClient struct {
  log *logger.Logger
  ai  OpenAIClient
}

func NewPlanClient(log *logger.Logger, ai OpenAIClient) PlanClient {
  return &planClient{
    log: log.With("service", "PlanClient"),
    ai:  ai,
  }
}

func (pc *planClient) Generate(ctx context.Context, prompt PathPrompt) (any, *GenerationFailure) {
  text, err := pc.ai.GenerateText(ctx, prompt.System, prompt.User)
  if err != nil {
    kind := classifyGenerationError(err)
    pc.log.Warn("External generation call failed", "kind", string(kind), "error", err)
    return nil, &GenerationFailure{Kind: kind, Reason: err.Error()}
  }

  payload := ExtractJSONBlock(text)

  var doc any
  if err := json.Unmarshal([]byte(payload), &doc); err != nil {
    pc.log.Warn("External generation output unparseable", "error", err)
    return nil, &GenerationFailure{
      Kind:    GenerationFailureMalformedOutput,
      Reason:  fmt.Sprintf("parse generated output: %v", err),
      RawText: text,
    }
  }
  return doc, nil
}

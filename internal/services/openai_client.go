package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "net"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/skillpath/backend/internal/logger"
)

// OpenAIClient is the transport half of the external plan boundary. It makes
// exactly one attempt per call: the ingestion policy on failure is fall back,
// not retry, and that decision belongs to the caller.
type OpenAIClient interface {
  GenerateText(ctx context.Context, system string, user string) (string, error)
}

type openAIClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

func NewOpenAIClient(log *logger.Logger) OpenAIClient {
  // An absent key is not a constructor error: the pipeline must still run
  // and classify it as a generation failure at call time.
  apiKey := os.Getenv("OPENAI_API_KEY")

  baseURL := os.Getenv("OPENAI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }

  model := os.Getenv("OPENAI_MODEL")
  if model == "" {
    model = "gpt-3.5-turbo"
  }

  timeoutSec := 60
  if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  return &openAIClient{
    log:        log.With("service", "OpenAIClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }
}

type openAIHTTPError struct {
  StatusCode int
  Body       string
}

func (e *openAIHTTPError) Error() string {
  return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (c *openAIClient) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return nil, err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return nil, err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return nil, readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return raw, nil
}

type chatCompletionsRequest struct {
  Model    string `json:"model"`
  Messages []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  } `json:"messages"`
  Temperature float64 `json:"temperature"`
  MaxTokens   int     `json:"max_tokens"`
}

type chatCompletionsResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func (c *openAIClient) GenerateText(ctx context.Context, system string, user string) (string, error) {
  if c.apiKey == "" {
    return "", ErrMissingAPIKey
  }

  req := chatCompletionsRequest{
    Model: c.model,
    Messages: []struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    }{
      {Role: "system", Content: system},
      {Role: "user", Content: user},
    },
    Temperature: 0.7,
    MaxTokens:   2000,
  }

  raw, err := c.doOnce(ctx, "POST", "/v1/chat/completions", req)
  if err != nil {
    return "", err
  }

  var resp chatCompletionsResponse
  if err := json.Unmarshal(raw, &resp); err != nil {
    return "", fmt.Errorf("openai decode error: %w; raw=%s", err, string(raw))
  }
  if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
    return "", fmt.Errorf("no completion content in response")
  }
  return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classifyGenerationError maps a transport-level error onto the generation
// failure taxonomy. Parse failures are classified by the caller, which holds
// the raw text.
func classifyGenerationError(err error) GenerationFailureKind {
  if errors.Is(err, ErrMissingAPIKey) {
    return GenerationFailureMissingCredentials
  }

  var httpErr *openAIHTTPError
  if errors.As(err, &httpErr) {
    switch {
    case httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden:
      return GenerationFailureAuthentication
    case httpErr.StatusCode == http.StatusTooManyRequests:
      return GenerationFailureRateLimited
    default:
      return GenerationFailureServiceError
    }
  }

  if errors.Is(err, context.DeadlineExceeded) {
    return GenerationFailureTransportTimeout
  }
  var netErr net.Error
  if errors.As(err, &netErr) && netErr.Timeout() {
    return GenerationFailureTransportTimeout
  }

  return GenerationFailureServiceError
}

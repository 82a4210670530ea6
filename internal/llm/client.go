package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request holds the parameters for one generation call.
type Request struct {
	Task        TaskType
	Prompt      string
	Temperature *float32 // nil uses task default
	MaxTokens   *int32   // nil uses task default
}

// Response holds the raw result of a generation call.
type Response struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to the generation collaborator. The core
// treats it as a black box that returns free-form text expected to
// contain a JSON document.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// attemptFunc performs one generation attempt against a single model.
// Split out so the fallback walk is testable without the SDK.
type attemptFunc func(ctx context.Context, model string, req Request) (string, error)

// GeminiClient implements Client on the Gemini API, walking an
// ordered model fallback list: each transport failure is classified
// and reported to the observer before the next model is tried.
type GeminiClient struct {
	cfg      Config
	observer Observer
	attempt  attemptFunc
}

// NewGeminiClient creates a Client backed by the Gemini API. Returns
// ErrNoCredential when no API key is configured, before any request
// is built.
func NewGeminiClient(ctx context.Context, cfg Config, observer Observer) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultConfig().Models
	}
	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c := newFallbackClient(cfg, observer, nil)
	c.attempt = func(ctx context.Context, model string, req Request) (string, error) {
		return generateOnce(ctx, sdk, cfg, model, req)
	}
	return c, nil
}

func newFallbackClient(cfg Config, observer Observer, attempt attemptFunc) *GeminiClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &GeminiClient{cfg: cfg, observer: observer, attempt: attempt}
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	for _, model := range c.cfg.Models {
		text, err := c.attempt(ctx, model, req)
		latency := time.Since(start).Milliseconds()
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Task: req.Task, Model: model, LatencyMs: latency, Success: true,
			})
			return &Response{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err
		c.observer.OnCallComplete(CallEvent{
			Task: req.Task, Model: model, LatencyMs: latency,
			Success: false, ErrorCode: errorCode(err),
		})

		// A dead context fails every remaining model the same way.
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
	}

	return nil, fmt.Errorf("%w: last error: %v", ErrModelsExhausted, lastErr)
}

// generateOnce runs one Gemini call against a single model.
func generateOnce(ctx context.Context, sdk *genai.Client, cfg Config, model string, req Request) (string, error) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	m := sdk.GenerativeModel(model)
	m.SetTemperature(temp)
	if maxTok > 0 {
		m.SetMaxOutputTokens(maxTok)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%w: model %s: %v", ErrUnavailable, model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: model %s returned no candidates", ErrInvalidOutput, model)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: model %s returned no text parts", ErrInvalidOutput, model)
	}
	return b.String(), nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

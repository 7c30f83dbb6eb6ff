package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

var (
	// ErrQuotaExceeded is returned once every retry against the oracle has
	// been consumed by quota rejections (429 / RESOURCE_EXHAUSTED).
	ErrQuotaExceeded = errors.New("gemini quota exceeded")
	// ErrEmptyResponse is returned when the oracle answers with no usable
	// text parts.
	ErrEmptyResponse = errors.New("empty response from gemini")
)

const (
	maxRetries     = 3
	initialBackoff = 5 * time.Second
)

// GenerationSettings bundles the sampling parameters for a single call.
type GenerationSettings struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Settings used by the structured-extraction tasks. Low temperature keeps
// the JSON output stable across retries.
var (
	structuredSettings = GenerationSettings{Temperature: 0.1, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048}
	longFormSettings   = GenerationSettings{Temperature: 0.1, TopP: 0.95, TopK: 40, MaxOutputTokens: 8192}
	chatSettings       = GenerationSettings{Temperature: 0.7, TopP: 0.9, TopK: 40, MaxOutputTokens: 1024}
)

// Oracle is the model-facing surface of the extraction pipeline. Keeping it
// an interface lets tests stub the model out entirely.
type Oracle interface {
	GenerateVision(ctx context.Context, prompt string, image []byte, cfg GenerationSettings) (string, error)
	GenerateText(ctx context.Context, prompt string, cfg GenerationSettings) (string, error)
}

// Backoff maps a 1-based retry attempt to a sleep duration. The default is
// linear: attempt × initialBackoff.
type Backoff func(attempt int) time.Duration

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * initialBackoff
}

// GeminiOracle calls the Gemini API with retry on quota errors. Non-quota
// failures are returned immediately; quota failures are retried maxRetries
// times before collapsing into ErrQuotaExceeded.
type GeminiOracle struct {
	client  *genai.Client
	model   string
	backoff Backoff

	// call performs one model invocation. Tests replace it to exercise
	// the retry loop without a live client.
	call func(ctx context.Context, cfg GenerationSettings, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiOracleOption func(*GeminiOracle)

// WithBackoff overrides the retry sleep schedule. Tests pass a zero
// schedule to avoid real sleeps.
func WithBackoff(b Backoff) GeminiOracleOption {
	return func(o *GeminiOracle) {
		o.backoff = b
	}
}

func NewGeminiOracle(client *genai.Client, model string, opts ...GeminiOracleOption) *GeminiOracle {
	o := &GeminiOracle{
		client:  client,
		model:   model,
		backoff: linearBackoff,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.call == nil {
		o.call = o.callGemini
	}
	return o
}

func (o *GeminiOracle) callGemini(ctx context.Context, cfg GenerationSettings, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	model := o.client.GenerativeModel(o.model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	model.SetTopK(cfg.TopK)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	return model.GenerateContent(ctx, parts...)
}

func (o *GeminiOracle) GenerateVision(ctx context.Context, prompt string, image []byte, cfg GenerationSettings) (string, error) {
	return o.generate(ctx, cfg, genai.Text(prompt), genai.ImageData("jpeg", image))
}

func (o *GeminiOracle) GenerateText(ctx context.Context, prompt string, cfg GenerationSettings) (string, error) {
	return o.generate(ctx, cfg, genai.Text(prompt))
}

func (o *GeminiOracle) generate(ctx context.Context, cfg GenerationSettings, parts ...genai.Part) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := o.call(ctx, cfg, parts...)
		if err == nil {
			return extractText(resp)
		}
		if !IsQuotaError(err) {
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		lastErr = err
		if attempt < maxRetries {
			select {
			case <-time.After(o.backoff(attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("%w: %v", ErrQuotaExceeded, lastErr)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// IsQuotaError reports whether err is a daily-quota rejection. The API
// surfaces these as googleapi 429s, but transport wrappers sometimes lose
// the typed error, so a string check backs it up.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}

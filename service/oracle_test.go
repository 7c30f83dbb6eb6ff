package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"googleapi 429", &googleapi.Error{Code: 429, Message: "rate limited"}, true},
		{"wrapped googleapi 429", errors.Join(errors.New("call failed"), &googleapi.Error{Code: 429}), true},
		{"googleapi 500", &googleapi.Error{Code: 500, Message: "internal"}, false},
		{"resource exhausted text", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"429 in message", errors.New("googleapi: Error 429: too many requests"), true},
		{"quota word", errors.New("daily Quota exceeded for project"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaError(tt.err); got != tt.want {
				t.Errorf("IsQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestLinearBackoff(t *testing.T) {
	for attempt, want := range map[int]time.Duration{
		1: initialBackoff,
		2: 2 * initialBackoff,
		3: 3 * initialBackoff,
	} {
		if got := linearBackoff(attempt); got != want {
			t.Errorf("linearBackoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(s)}}},
		},
	}
}

// retryOracle builds a GeminiOracle whose model call is scripted and whose
// backoff sleeps are recorded instead of slept.
func retryOracle(call func(attempt int) (*genai.GenerateContentResponse, error)) (*GeminiOracle, *[]int) {
	var backoffAttempts []int
	attempts := 0
	o := NewGeminiOracle(nil, "gemini-test", WithBackoff(func(attempt int) time.Duration {
		backoffAttempts = append(backoffAttempts, attempt)
		return 0
	}))
	o.call = func(ctx context.Context, cfg GenerationSettings, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
		attempts++
		return call(attempts)
	}
	return o, &backoffAttempts
}

func TestGenerateRetriesQuotaErrorsThreeTimes(t *testing.T) {
	calls := 0
	o, backoffs := retryOracle(func(attempt int) (*genai.GenerateContentResponse, error) {
		calls = attempt
		return nil, &googleapi.Error{Code: 429, Message: "quota"}
	})

	_, err := o.GenerateText(context.Background(), "hello", structuredSettings)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
	if calls != maxRetries {
		t.Errorf("call count = %d, want %d", calls, maxRetries)
	}
	// No sleep after the final attempt.
	if want := []int{1, 2}; len(*backoffs) != len(want) || (*backoffs)[0] != 1 || (*backoffs)[1] != 2 {
		t.Errorf("backoff attempts = %v, want %v", *backoffs, want)
	}
}

func TestGenerateSucceedsAfterQuotaRetry(t *testing.T) {
	o, backoffs := retryOracle(func(attempt int) (*genai.GenerateContentResponse, error) {
		if attempt == 1 {
			return nil, errors.New("rpc error: RESOURCE_EXHAUSTED")
		}
		return textResponse("recovered"), nil
	})

	got, err := o.GenerateText(context.Background(), "hello", structuredSettings)
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "recovered" {
		t.Errorf("response = %q, want %q", got, "recovered")
	}
	if len(*backoffs) != 1 || (*backoffs)[0] != 1 {
		t.Errorf("backoff attempts = %v, want [1]", *backoffs)
	}
}

func TestGenerateReturnsNonQuotaErrorImmediately(t *testing.T) {
	calls := 0
	o, backoffs := retryOracle(func(attempt int) (*genai.GenerateContentResponse, error) {
		calls = attempt
		return nil, errors.New("connection refused")
	})

	_, err := o.GenerateText(context.Background(), "hello", structuredSettings)
	if err == nil || errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("want plain error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("call count = %d, want 1", calls)
	}
	if len(*backoffs) != 0 {
		t.Errorf("backoff attempts = %v, want none", *backoffs)
	}
}

// fakeOracle scripts responses for service tests.
type fakeOracle struct {
	visionResponse string
	visionErr      error
	textResponse   string
	textErr        error
	visionCalls    int
	textCalls      int
	lastPrompt     string
}

func (f *fakeOracle) GenerateVision(ctx context.Context, prompt string, image []byte, cfg GenerationSettings) (string, error) {
	f.visionCalls++
	f.lastPrompt = prompt
	return f.visionResponse, f.visionErr
}

func (f *fakeOracle) GenerateText(ctx context.Context, prompt string, cfg GenerationSettings) (string, error) {
	f.textCalls++
	f.lastPrompt = prompt
	return f.textResponse, f.textErr
}

package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"google.golang.org/genai"

	"interview-navigator/internal/config"
)

type GeminiService struct {
	client         *genai.Client
	model          string
	maxRetries     int
	baseDelay      time.Duration
	maxDelay       time.Duration
	requestTimeout time.Duration

	// Tracked across concurrent requests, so all access is atomic.
	consecutiveErrors atomic.Int64
	circuitBreakerMax int64
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	aiConfig := config.LoadAIConfig()
	return &GeminiService{
		client:            client,
		model:             geminiConfig.Model,
		maxRetries:        aiConfig.MaxRetries,
		baseDelay:         time.Second,
		maxDelay:          30 * time.Second,
		requestTimeout:    aiConfig.RequestTimeout,
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if failures := s.consecutiveErrors.Load(); failures >= s.circuitBreakerMax {
		return "", fmt.Errorf("%w: circuit breaker open after %d consecutive errors",
			ErrProviderAPI, failures)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.3)),
		MaxOutputTokens: int32(maxTokens),
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for Generate after %v", attempt, s.maxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("%w: timed out during retry: %v", ErrProviderConnection, timeoutCtx.Err())
			}
		}

		result, err := s.client.Models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				s.consecutiveErrors.Add(1)
				return "", fmt.Errorf("%w: invalid response: %v", ErrProviderAPI, err)
			}
			s.consecutiveErrors.Store(0)
			return result.Text(), nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			s.consecutiveErrors.Add(1)
			return "", s.classify(err)
		}

		log.Printf("Retryable gemini error on attempt %d: %v", attempt+1, err)
	}

	s.consecutiveErrors.Add(1)
	return "", fmt.Errorf("max retries (%d) exceeded: %w", s.maxRetries, s.classify(lastErr))
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "context canceled") ||
		strings.Contains(msg, "context deadline exceeded") {
		return false
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	return connectionError(err)
}

// classify wraps the raw SDK error into the taxonomy that handlers map onto
// user-facing messages. The full detail still reaches the log.
func (s *GeminiService) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case connectionError(err):
		log.Printf("Gemini connection error: %v", err)
		return fmt.Errorf("%w: %v", ErrProviderConnection, err)
	default:
		if apiErr, ok := err.(*genai.APIError); ok {
			log.Printf("Gemini API error (code %d): %v", apiErr.Code, err)
			return fmt.Errorf("%w: %v", ErrProviderAPI, err)
		}
		log.Printf("Unexpected gemini error: %v", err)
		return fmt.Errorf("generate content failed: %w", err)
	}
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

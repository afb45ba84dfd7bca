package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"interview-navigator/internal/config"
)

// OpenRouterService talks to an OpenAI-compatible chat-completions endpoint.
// It is the alternative to the Gemini provider, selected via AI_PROVIDER.
type OpenRouterService struct {
	client     *resty.Client
	model      string
	maxRetries int
	baseDelay  time.Duration
}

func NewOpenRouterService() *OpenRouterService {
	openRouterConfig := config.LoadOpenRouterConfig()
	aiConfig := config.LoadAIConfig()

	client := resty.New().
		SetBaseURL(openRouterConfig.BaseURL).
		SetTimeout(aiConfig.RequestTimeout).
		SetHeader("Authorization", "Bearer "+openRouterConfig.APIKey).
		SetHeader("Content-Type", "application/json")

	return &OpenRouterService{
		client:     client,
		model:      openRouterConfig.Model,
		maxRetries: aiConfig.MaxRetries,
		baseDelay:  time.Second,
	}
}

func (s *OpenRouterService) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := map[string]interface{}{
		"model":      s.model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.baseDelay * time.Duration(1<<(attempt-1))
			log.Printf("Retry attempt %d/%d for chat completion after %v", attempt, s.maxRetries, delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: timed out during retry: %v", ErrProviderConnection, ctx.Err())
			}
		}

		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(body).
			Post("/chat/completions")
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrProviderConnection, err)
			log.Printf("OpenRouter connection error: %v", err)
			continue
		}

		if resp.IsError() {
			apiErr := fmt.Errorf("%w: status %d: %s", ErrProviderAPI, resp.StatusCode(), resp.String())
			if !retryableStatus(resp.StatusCode()) {
				log.Printf("OpenRouter API error (status %d): %s", resp.StatusCode(), resp.String())
				return "", apiErr
			}
			lastErr = apiErr
			log.Printf("Retryable OpenRouter status %d on attempt %d", resp.StatusCode(), attempt+1)
			continue
		}

		content := gjson.Get(resp.String(), "choices.0.message.content").String()
		if content == "" {
			log.Printf("OpenRouter returned no content: %s", resp.String())
			return "", fmt.Errorf("%w: empty completion", ErrProviderAPI)
		}
		return content, nil
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", s.maxRetries, lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

package config

import (
	"sync"
	"time"
)

// Provider names accepted in AI_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// AIConfig bounds every generation call: one timeout, one retry cap, shared by
// both providers. Retries apply to transient provider failures only.
type AIConfig struct {
	Provider       string
	RequestTimeout time.Duration
	MaxRetries     int
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		aiConfig = &AIConfig{
			Provider:       getEnv("AI_PROVIDER", ProviderGemini),
			RequestTimeout: 60 * time.Second,
			MaxRetries:     3,
		}
	})
	return aiConfig
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func breakerService() *GeminiService {
	return &GeminiService{
		model:             "test-model",
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          30 * time.Second,
		requestTimeout:    time.Minute,
		circuitBreakerMax: 5,
	}
}

func TestGenerateCircuitBreakerOpen(t *testing.T) {
	s := breakerService()
	s.consecutiveErrors.Store(s.circuitBreakerMax)

	_, err := s.Generate(context.Background(), "prompt", 100)
	if !errors.Is(err, ErrProviderAPI) {
		t.Fatalf("open breaker: error = %v, want ErrProviderAPI", err)
	}
}

func TestGenerateCircuitBreakerConcurrentReads(t *testing.T) {
	s := breakerService()
	s.consecutiveErrors.Store(s.circuitBreakerMax)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.Generate(context.Background(), "prompt", 100); !errors.Is(err, ErrProviderAPI) {
					t.Errorf("open breaker: error = %v, want ErrProviderAPI", err)
					return
				}
				s.consecutiveErrors.Add(1)
			}
		}()
	}
	wg.Wait()

	if s.consecutiveErrors.Load() < s.circuitBreakerMax {
		t.Error("breaker counter lost increments under concurrency")
	}
}

func TestCalculateBackoffIsCapped(t *testing.T) {
	s := breakerService()

	for attempt := 1; attempt <= 10; attempt++ {
		delay := s.calculateBackoff(attempt)
		if delay <= 0 {
			t.Errorf("attempt %d: delay %v not positive", attempt, delay)
		}
		if delay > s.maxDelay {
			t.Errorf("attempt %d: delay %v exceeds cap %v", attempt, delay, s.maxDelay)
		}
	}
}

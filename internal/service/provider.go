package service

import (
	"context"
	"errors"
	"strings"
)

// TextGenerator is the single seam to the external generation provider. Both
// implementations bound every call with the configured timeout and retry only
// transient failures.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Provider failures are classified for logging, then collapsed into one of two
// user-facing messages: connectivity problems get their own wording, API-level
// and unexpected failures share the generic one.
var (
	ErrProviderConnection = errors.New("provider connection failed")
	ErrProviderAPI        = errors.New("provider api error")
)

const (
	MsgProviderUnreachable = "Unable to connect to the AI service. Please check your internet connection and try again."
	MsgProviderUnavailable = "Unable to generate a response at this time. Please try again later."
)

// UserMessage maps a provider error to the message shown to the caller.
// Internal detail never leaks past this point.
func UserMessage(err error) string {
	if errors.Is(err, ErrProviderConnection) {
		return MsgProviderUnreachable
	}
	return MsgProviderUnavailable
}

// connectionError matches transport-level failures by message, the way the
// upstream SDKs surface them.
func connectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"timeout",
		"EOF",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Package completion provides the outbound text-completion boundary.
// It exposes a provider-neutral Client interface with OpenAI and Anthropic
// implementations selected by configuration.
package completion

import (
	"context"
	"fmt"
)

// Request carries a single chat-style completion exchange.
type Request struct {
	// System is the system instruction for the exchange.
	System string
	// User is the user-role prompt.
	User string
	// Temperature controls sampling randomness.
	Temperature float32
	// MaxTokens bounds output length. Zero falls back to the configured default.
	MaxTokens int
}

// Client is the provider-neutral completion interface. Implementations
// return the raw completion text, which callers parse for structured content.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New constructs the client for the configured provider. A missing API key
// yields a client whose calls fail with ErrNotConfigured rather than a
// construction error, so the service starts without completion credentials.
func New(cfg *Config) (Client, error) {
	if cfg.APIKey == "" {
		return &disabled{}, nil
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		return newAnthropic(cfg), nil
	case ProviderOpenAI:
		return newOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}

type disabled struct{}

func (d *disabled) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

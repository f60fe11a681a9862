package completion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := &completion.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Provider != completion.ProviderOpenAI {
		t.Errorf("Provider = %q, want %q", cfg.Provider, completion.ProviderOpenAI)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", cfg.MaxTokens)
	}
	if cfg.Enabled() {
		t.Error("Enabled() = true without an API key")
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_COMPLETION_PROVIDER", "anthropic")
	t.Setenv("TEST_COMPLETION_API_KEY", "sk-test")
	t.Setenv("TEST_COMPLETION_MODEL", "claude-sonnet-4-0")
	t.Setenv("TEST_COMPLETION_MAX_TOKENS", "2000")

	cfg := &completion.Config{}
	env := &completion.Env{
		Provider:  "TEST_COMPLETION_PROVIDER",
		APIKey:    "TEST_COMPLETION_API_KEY",
		Model:     "TEST_COMPLETION_MODEL",
		MaxTokens: "TEST_COMPLETION_MAX_TOKENS",
	}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Provider != completion.ProviderAnthropic {
		t.Errorf("Provider = %q, want %q", cfg.Provider, completion.ProviderAnthropic)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.APIKey)
	}
	if cfg.Model != "claude-sonnet-4-0" {
		t.Errorf("Model = %q, want claude-sonnet-4-0", cfg.Model)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", cfg.MaxTokens)
	}
	if !cfg.Enabled() {
		t.Error("Enabled() = false with an API key")
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  completion.Config
	}{
		{"unknown provider", completion.Config{Provider: "bedrock"}},
		{"negative max tokens", completion.Config{MaxTokens: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() error = nil, want validation failure")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := completion.Config{
		Provider:  completion.ProviderOpenAI,
		Model:     "gpt-4o-mini",
		MaxTokens: 1000,
	}

	cfg.Merge(&completion.Config{
		Provider: completion.ProviderAnthropic,
		APIKey:   "sk-overlay",
	})

	if cfg.Provider != completion.ProviderAnthropic {
		t.Errorf("Provider = %q, want overlay value", cfg.Provider)
	}
	if cfg.APIKey != "sk-overlay" {
		t.Errorf("APIKey = %q, want overlay value", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want base value preserved", cfg.Model)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want base value preserved", cfg.MaxTokens)
	}
}

func TestNewWithoutAPIKey(t *testing.T) {
	cfg := &completion.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	client, err := completion.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Complete(context.Background(), completion.Request{User: "classify this"})
	if !errors.Is(err, completion.ErrNotConfigured) {
		t.Errorf("Complete() error = %v, want ErrNotConfigured", err)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := &completion.Config{Provider: "bedrock", APIKey: "sk-test"}
	if _, err := completion.New(cfg); err == nil {
		t.Error("New() error = nil, want unknown provider failure")
	}
}

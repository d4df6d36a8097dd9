package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET",
		"LLM_PROVIDER", "LLM_MODEL",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DEEPSEEK_API_KEY",
		"PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.LLMProvider)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if Get() != cfg {
		t.Error("expected Get() to return the loaded instance")
	}
}

func TestLoadMissingRequiredVars(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
	for _, want := range []string{"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "OPENAI_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to name %s, got: %v", want, err)
		}
	}
}

func TestLoadProviderKeyCoupling(t *testing.T) {
	tests := []struct {
		provider string
		keyVar   string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderClaude, "ANTHROPIC_API_KEY"},
		{ProviderDeepSeek, "DEEPSEEK_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
			t.Setenv("SLACK_SIGNING_SECRET", "secret")
			t.Setenv("LLM_PROVIDER", tt.provider)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.keyVar) {
				t.Fatalf("expected missing %s error, got: %v", tt.keyVar, err)
			}

			t.Setenv(tt.keyVar, "key")
			if _, err := Load(); err != nil {
				t.Fatalf("Load() failed with %s set: %v", tt.keyVar, err)
			}
		})
	}
}

func TestLoadUnsupportedProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("LLM_PROVIDER", "bard")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported LLM providers.
const (
	ProviderOpenAI   = "openai"
	ProviderClaude   = "claude"
	ProviderDeepSeek = "deepseek"
)

// Config holds all configuration for the application. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	// Slack configuration
	SlackBotToken      string // Required: Slack bot user OAuth token
	SlackSigningSecret string // Required: Slack app signing secret

	// LLM configuration
	LLMProvider     string // openai, claude or deepseek
	LLMModel        string // optional model override, provider default when empty
	OpenAIAPIKey    string // required when provider is openai
	AnthropicAPIKey string // required when provider is claude
	DeepSeekAPIKey  string // required when provider is deepseek

	// Server configuration
	Port int // listen port, ignored under managed-deployment hosting

	// Log level
	LogLevel string
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Load required values
	requiredVars := map[string]*string{
		"SLACK_BOT_TOKEN":      &cfg.SlackBotToken,
		"SLACK_SIGNING_SECRET": &cfg.SlackSigningSecret,
	}

	cfg.LLMProvider = os.Getenv("LLM_PROVIDER")
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = ProviderOpenAI
	}

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		requiredVars["OPENAI_API_KEY"] = &cfg.OpenAIAPIKey
	case ProviderClaude:
		requiredVars["ANTHROPIC_API_KEY"] = &cfg.AnthropicAPIKey
	case ProviderDeepSeek:
		requiredVars["DEEPSEEK_API_KEY"] = &cfg.DeepSeekAPIKey
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = os.Getenv(env)
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.LLMModel = os.Getenv("LLM_MODEL")

	cfg.Port = 8000
	if val := os.Getenv("PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}

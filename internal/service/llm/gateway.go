// Package llm sends prompts to the configured language-model provider and
// shields callers from provider failures.
package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slack_relay/internal/config"
	"slack_relay/internal/logger"
)

const systemPrompt = `You are a helpful assistant replying inside Slack.
Be concise and conversational, and use the surrounding conversation context when it is relevant.
Use Slack-supported markdown (e.g. *bold*, > quote), but avoid unsupported formatting (like headers #, tables, or HTML).`

// FallbackMessage is returned whenever the provider call fails. The caller's
// job of posting something back to Slack must still succeed.
const FallbackMessage = "Sorry, I encountered an error while processing your message. Please try again."

const defaultTemperature = 0.7

// Gateway produces a reply for a user message, optionally grounded in a
// block of prior conversation context.
type Gateway interface {
	GenerateResponse(ctx context.Context, message, contextBlock string) string
}

// generator is the provider-specific text-in/text-out capability.
type generator interface {
	generate(ctx context.Context, system, user string) (string, error)
}

// Client implements Gateway over one of the supported providers, selected at
// construction time and never switched afterwards.
type Client struct {
	provider string
	gen      generator
}

var _ Gateway = (*Client)(nil)

// New builds a Client for the provider named in cfg.
func New(cfg *config.Config) (*Client, error) {
	var (
		gen generator
		err error
	)

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		gen, err = newOpenAIGenerator(openAIEndpoint, cfg.OpenAIAPIKey, modelOrDefault(cfg.LLMModel, defaultOpenAIModel))
	case config.ProviderDeepSeek:
		gen, err = newOpenAIGenerator(deepSeekEndpoint, cfg.DeepSeekAPIKey, modelOrDefault(cfg.LLMModel, defaultDeepSeekModel))
	case config.ProviderClaude:
		gen = newAnthropicGenerator(cfg.AnthropicAPIKey, modelOrDefault(cfg.LLMModel, defaultClaudeModel))
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}

	return &Client{provider: cfg.LLMProvider, gen: gen}, nil
}

// GenerateResponse returns the provider's reply to message, or
// FallbackMessage when the single attempt fails. Errors never propagate.
func (c *Client) GenerateResponse(ctx context.Context, message, contextBlock string) string {
	reply, err := c.gen.generate(ctx, systemPrompt, buildUserPrompt(message, contextBlock))
	if err != nil {
		logger.GetLogger().Error("failed to generate response",
			zap.String("provider", c.provider), zap.Error(err))
		return FallbackMessage
	}
	return reply
}

func buildUserPrompt(message, contextBlock string) string {
	if contextBlock != "" {
		return fmt.Sprintf("Context: %s\n\nUser message: %s\n\nPlease provide a helpful response:", contextBlock, message)
	}
	return fmt.Sprintf("User message: %s\n\nPlease provide a helpful response:", message)
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

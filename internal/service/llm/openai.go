package llm

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

const (
	openAIEndpoint   = "https://api.openai.com/v1"
	deepSeekEndpoint = "https://api.deepseek.com/v1"

	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDeepSeekModel = "deepseek-chat"
)

// openAIGenerator talks to any OpenAI-compatible chat-completions endpoint.
// DeepSeek exposes the same wire format at its own base URL, so both
// providers share this implementation.
type openAIGenerator struct {
	client *azopenai.Client
	model  string
}

func newOpenAIGenerator(endpoint, apiKey, model string) (*openAIGenerator, error) {
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientForOpenAI(endpoint, keyCredential, nil)
	if err != nil {
		return nil, err
	}

	return &openAIGenerator{
		client: client,
		model:  model,
	}, nil
}

func (g *openAIGenerator) generate(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(g.model),
		Messages: []azopenai.ChatRequestMessageClassification{
			&azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(system),
			},
			&azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(user),
			},
		},
		Temperature: to.Ptr[float32](defaultTemperature),
		N:           to.Ptr[int32](1),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("no completion choices returned")
	}
	return *resp.Choices[0].Message.Content, nil
}

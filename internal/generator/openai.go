package generator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type openAIClient struct {
	model model.BaseChatModel
}

// NewOpenAI creates a Client for any OpenAI-compatible endpoint.
func NewOpenAI(ctx context.Context, baseURL, modelName, apiKey string) (Client, error) {
	cfg := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	m, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat model: %v", ErrUnavailable, err)
	}
	return &openAIClient{model: m}, nil
}

func (c *openAIClient) Generate(ctx context.Context, prompt, systemPrompt, sessionID string) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(prompt))

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	return resp.Content, nil
}

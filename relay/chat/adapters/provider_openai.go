package adapters

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chat-relay/chat-relay/relay/chat"
	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// OpenAIProviderConfig configures the remote completion backend.
type OpenAIProviderConfig struct {
	APIKey       string
	BaseURL      string // optional, for OpenAI-compatible endpoints
	Model        string
	MaxNewTokens int
	Temperature  float32
}

// OpenAIProvider implements Provider against an OpenAI-compatible chat
// completion API. One blocking round trip per call; retries and timeouts are
// left to the caller.
type OpenAIProvider struct {
	client *openai.Client
	config OpenAIProviderConfig
	policy chat.PromptPolicy
}

// NewOpenAIProvider creates a provider. The prompt policy decides how stored
// history is flattened into the outbound prompt; nil selects UserOnlyPrompt.
func NewOpenAIProvider(cfg OpenAIProviderConfig, policy chat.PromptPolicy) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("completion API key is not configured")
	}
	if policy == nil {
		policy = chat.UserOnlyPrompt
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		policy: policy,
	}, nil
}

// Complete flattens the conversation through the prompt policy and sends it
// upstream as a single user message.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []ports.PromptMessage) (string, error) {
	prompt := p.policy(messages)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		MaxTokens:   p.config.MaxNewTokens,
		Temperature: p.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

var _ ports.Provider = (*OpenAIProvider)(nil)

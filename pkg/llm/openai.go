package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient provides access to OpenAI-compatible completion endpoints
// (api.openai.com, vLLM, Ollama and the like) behind the same Completer
// contract as the Yandex backend.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// OpenAIConfig holds configuration for creating an OpenAI-compatible
// client.
type OpenAIConfig struct {
	BaseURL string // Base URL, e.g. "https://api.openai.com/v1"
	Model   string // Model name, e.g. "gpt-4o"
	APIKey  string // Optional for local endpoints
}

// NewOpenAIClient creates a new OpenAI-compatible completion client.
func NewOpenAIClient(cfg *OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.Named("llm"),
	}, nil
}

// Complete sends the combined prompt as a single user message with the
// fixed assistant system message and returns the reply text verbatim.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("Completion request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessageText},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		c.logger.Error("Completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeShape, "unexpected response format: no choices in response", false, nil)
	}

	answer := resp.Choices[0].Message.Content
	c.logger.Info("Completion request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return answer, nil
}

// classifyOpenAIError maps go-openai errors onto the structured Error type.
func classifyOpenAIError(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newHTTPError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	return classifyTransportError(err)
}

// Ensure OpenAIClient implements Completer at compile time.
var _ Completer = (*OpenAIClient)(nil)

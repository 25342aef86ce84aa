package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/signalsift/signalsift/internal/model"
)

// OpenAIProvider implements the Provider interface over the Chat Completions API
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI-backed oracle
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Classify analyzes one comment via the chat API
func (p *OpenAIProvider) Classify(ctx context.Context, comment model.Comment) (*model.ClassificationResult, error) {
	raw, err := p.complete(ctx, classifyPrompt(comment))
	if err != nil {
		return nil, &model.OracleError{Op: "classify", Err: err}
	}

	result, err := parseClassification(raw)
	if err != nil {
		return nil, &model.OracleError{Op: "classify", Err: err}
	}
	return result, nil
}

// AnalyzeBias performs deep bias analysis via the chat API
func (p *OpenAIProvider) AnalyzeBias(ctx context.Context, comment model.Comment, classification model.ClassificationResult) (*model.BiasResult, error) {
	raw, err := p.complete(ctx, biasPrompt(comment, classification))
	if err != nil {
		return nil, &model.OracleError{Op: "bias", Err: err}
	}

	result, err := parseBias(raw)
	if err != nil {
		return nil, &model.OracleError{Op: "bias", Err: err}
	}
	return result, nil
}

// complete sends one prompt and returns the raw response text
func (p *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	mdl := p.config.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	timeout := time.Duration(p.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a content analysis engine. You respond with valid JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1, // Near-deterministic structured output
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}

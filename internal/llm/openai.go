package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"skisnap/internal/logger"
	"skisnap/internal/models"
)

const systemPrompt = `You are a mountain conditions editor. Write a short daily digest in
markdown for skiers from the JSON snapshot you are given: one "##" heading for
the day, then one "###" section per resort. Mention only facts present in the
data; if a value is missing, do not guess it. Call out avalanche danger of 3 or
more explicitly. Keep the whole digest under 300 words.`

// OpenAIClient handles OpenAI API interactions
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIClientWithConfig creates a client from a prepared configuration,
// e.g. one pointing at a different base URL.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: 60 * time.Second,
	}
}

// GenerateDigest asks the model for a markdown digest of the snapshot
func (c *OpenAIClient) GenerateDigest(ctx context.Context, snapshot *models.Snapshot) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt, err := BuildPrompt(snapshot)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   1200,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("no response from OpenAI")
	}

	digest := resp.Choices[0].Message.Content
	logger.Debug("Generated digest", map[string]interface{}{
		"model":      c.model,
		"characters": len(digest),
	})
	return digest, nil
}

// BuildPrompt renders the snapshot as the user message. Per-stage source
// errors are left out; the model only needs what was found.
func BuildPrompt(snapshot *models.Snapshot) (string, error) {
	if snapshot == nil {
		return "", errors.New("snapshot is required for digest generation")
	}

	trimmed := *snapshot
	trimmed.Resorts = make([]models.ResortView, len(snapshot.Resorts))
	for i, v := range snapshot.Resorts {
		v.Sources = nil
		v.SnowfallSeries = nil
		trimmed.Resorts[i] = v
	}

	data, err := json.MarshalIndent(trimmed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return fmt.Sprintf("## Ski resort conditions (as of %s)\n\n```json\n%s\n```\n",
		snapshot.GeneratedAt.Format("2006-01-02 15:04 UTC"), data), nil
}

// Package enrich expands a todo description through a chat-completion API
// and converts the markdown answer to plain text.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const instruction = "Rewrite the following task description as a single, more detailed and actionable description. Answer with the description only, in under 1000 characters."

// maxDescription matches the description column constraint.
const maxDescription = 1000

// Enricher calls an OpenAI-compatible chat-completion endpoint.
type Enricher struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New creates an Enricher. baseURL overrides the default API endpoint when
// non-empty (also used by tests to point at a local server).
func New(apiKey, baseURL, model string, timeout time.Duration) *Enricher {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Enricher{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Enrich returns an expanded plain-text version of description. The round
// trip is bounded by the configured timeout; callers treat any error as
// "keep the original description".
func (e *Enricher) Enrich(ctx context.Context, description string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: description},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := StripMarkdown(resp.Choices[0].Message.Content)
	if len([]rune(text)) < 3 {
		return "", errors.New("enriched description too short")
	}
	if runes := []rune(text); len(runes) > maxDescription {
		text = string(runes[:maxDescription])
	}
	return text, nil
}

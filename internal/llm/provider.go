// Package llm provides the assistant chat providers and their registry.
package llm

import (
	"context"
	"errors"
)

// ErrProviderNotFound is returned when a provider name is not registered.
var ErrProviderNotFound = errors.New("provider not found")

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("empty response")

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Chat sends a single user prompt and returns the assistant reply.
	Chat(ctx context.Context, prompt string, opts ChatOptions) (*ChatResult, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// ChatOptions contains options for a chat request.
type ChatOptions struct {
	SystemPrompt string  `json:"system_prompt,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature  float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Model        string  `json:"model,omitempty"`       // overrides the provider default
}

// ChatResult contains the assistant reply.
type ChatResult struct {
	Content string     `json:"content"`
	Usage   TokenUsage `json:"usage"`
	Model   string     `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultSystemPrompt asks for replies in the markdown subset the block
// parser understands.
const DefaultSystemPrompt = `You are an assistant for event organizers.
Answer with plain text lines using only this markdown subset:
headings with #, ## or ###; bullet lists with "- "; numbered lists with "1. ";
pipe tables with a header row and a --- separator row; **bold** for emphasis.
Do not use code fences, links, images or nested lists.`

// DefaultChatOptions returns the default chat options.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		SystemPrompt: DefaultSystemPrompt,
		MaxTokens:    4096,
		Temperature:  0.3,
	}
}

func (o ChatOptions) model(fallback string) string {
	if o.Model != "" {
		return o.Model
	}
	return fallback
}

func (o ChatOptions) maxTokens() int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return DefaultChatOptions().MaxTokens
}

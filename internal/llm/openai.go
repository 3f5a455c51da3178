package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// OpenAIEnvKey holds the OpenAI API key.
const OpenAIEnvKey = "OPENAI_API_KEY"

// OllamaEnvKey holds the ollama server address.
const OllamaEnvKey = "OLLAMA_HOST"

// OpenAI talks to the chat completions API. It also serves ollama through
// its OpenAI-compatible endpoint.
type OpenAI struct {
	name   string
	apiKey string
	model  string
	client *openai.Client
	log    zerolog.Logger
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg Config) *OpenAI {
	apiKey := cfg.apiKey(OpenAIEnvKey)
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.timeout()}

	return &OpenAI{
		name:   ProviderOpenAI,
		apiKey: apiKey,
		model:  cfg.model(DefaultOpenAIModel),
		client: openai.NewClientWithConfig(clientCfg),
		log:    cfg.Log.With().Str("provider", ProviderOpenAI).Logger(),
	}
}

// NewOllama creates a provider for a local ollama server. BaseURL is the
// server address; OLLAMA_HOST is used when it is empty.
func NewOllama(cfg Config) *OpenAI {
	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = cfg.apiKey(OllamaEnvKey)
	}
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	clientCfg := openai.DefaultConfig("ollama")
	clientCfg.BaseURL = strings.TrimRight(endpoint, "/") + "/v1"
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.timeout()}

	return &OpenAI{
		name:   ProviderOllama,
		apiKey: "ollama",
		model:  cfg.model(DefaultOllamaModel),
		client: openai.NewClientWithConfig(clientCfg),
		log:    cfg.Log.With().Str("provider", ProviderOllama).Logger(),
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return o.name }

// Validate implements Provider.
func (o *OpenAI) Validate() error {
	if o.apiKey == "" {
		return errors.New("OpenAI API key not configured (set OPENAI_API_KEY or provide via config)")
	}
	return nil
}

// Chat implements Provider.
func (o *OpenAI) Chat(ctx context.Context, prompt string, opts ChatOptions) (*ChatResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       opts.model(o.model),
		Messages:    messages,
		MaxTokens:   opts.maxTokens(),
		Temperature: float32(opts.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", o.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%s: %w", o.name, ErrEmptyResponse)
	}

	usage := TokenUsage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	o.log.Debug().Str("model", resp.Model).Int("tokens", usage.TotalTokens).Msg("chat completed")

	return &ChatResult{
		Content: resp.Choices[0].Message.Content,
		Usage:   usage,
		Model:   resp.Model,
	}, nil
}

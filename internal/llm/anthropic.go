package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

// AnthropicEnvKey holds the Anthropic API key.
const AnthropicEnvKey = "ANTHROPIC_API_KEY"

// Anthropic talks to the Claude Messages API.
type Anthropic struct {
	apiKey  string
	model   string
	baseURL string
	opts    []option.RequestOption
	log     zerolog.Logger
}

// NewAnthropic creates an Anthropic provider.
func NewAnthropic(cfg Config, extra ...option.RequestOption) *Anthropic {
	a := &Anthropic{
		apiKey:  cfg.apiKey(AnthropicEnvKey),
		model:   cfg.model(DefaultAnthropicModel),
		baseURL: cfg.BaseURL,
		log:     cfg.Log.With().Str("provider", ProviderAnthropic).Logger(),
	}

	a.opts = []option.RequestOption{
		option.WithAPIKey(a.apiKey),
		option.WithRequestTimeout(cfg.timeout()),
	}
	if a.baseURL != "" {
		a.opts = append(a.opts, option.WithBaseURL(a.baseURL))
	}
	a.opts = append(a.opts, extra...)
	return a
}

// Name implements Provider.
func (a *Anthropic) Name() string { return ProviderAnthropic }

// Validate implements Provider.
func (a *Anthropic) Validate() error {
	if a.apiKey == "" {
		return errors.New("Anthropic API key not configured (set ANTHROPIC_API_KEY or provide via config)")
	}
	return nil
}

// Chat implements Provider.
func (a *Anthropic) Chat(ctx context.Context, prompt string, opts ChatOptions) (*ChatResult, error) {
	client := anthropic.NewClient(a.opts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.model(a.model)),
		MaxTokens: int64(opts.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(opts.Temperature),
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.SystemPrompt}}
	}

	msg, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("anthropic: %w", ErrEmptyResponse)
	}

	usage := TokenUsage{
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens

	a.log.Debug().Str("model", string(msg.Model)).Int("tokens", usage.TotalTokens).Msg("chat completed")

	return &ChatResult{
		Content: sb.String(),
		Usage:   usage,
		Model:   string(msg.Model),
	}, nil
}

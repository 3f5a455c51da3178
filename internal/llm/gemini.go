package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiEnvKey holds the Google API key.
const GeminiEnvKey = "GOOGLE_API_KEY"

// Gemini talks to the Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	cfg     Config
	log     zerolog.Logger
}

// NewGemini creates a Gemini provider.
func NewGemini(cfg Config) *Gemini {
	return &Gemini{
		apiKey:  cfg.apiKey(GeminiEnvKey),
		model:   cfg.model(DefaultGeminiModel),
		baseURL: cfg.BaseURL,
		cfg:     cfg,
		log:     cfg.Log.With().Str("provider", ProviderGemini).Logger(),
	}
}

// Name implements Provider.
func (g *Gemini) Name() string { return ProviderGemini }

// Validate implements Provider.
func (g *Gemini) Validate() error {
	if g.apiKey == "" {
		return errors.New("Google API key not configured (set GOOGLE_API_KEY or provide via config)")
	}
	return nil
}

// Chat implements Provider.
func (g *Gemini) Chat(ctx context.Context, prompt string, opts ChatOptions) (*ChatResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: g.cfg.timeout()},
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens: int32(opts.maxTokens()),
	}
	if opts.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	model := opts.model(g.model)
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	var usage TokenUsage
	if resp.UsageMetadata != nil {
		usage = TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}
	g.log.Debug().Str("model", model).Int("tokens", usage.TotalTokens).Msg("chat completed")

	return &ChatResult{
		Content: text,
		Usage:   usage,
		Model:   model,
	}, nil
}

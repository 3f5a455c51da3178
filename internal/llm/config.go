package llm

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Default models per provider.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOllamaModel    = "llama3.2"

	DefaultOllamaEndpoint = "http://localhost:11434"
)

const defaultTimeout = 120 * time.Second

// Config holds the settings shared by every provider constructor.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // custom endpoint; required shape differs per provider
	Timeout time.Duration
	Log     zerolog.Logger
}

func (c Config) apiKey(envKey string) string {
	if c.APIKey != "" && !strings.HasPrefix(c.APIKey, "${") {
		return c.APIKey
	}
	return os.Getenv(envKey)
}

func (c Config) model(fallback string) string {
	if c.Model != "" {
		return c.Model
	}
	return fallback
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

// DetectProviderFromModel guesses the provider serving a model name. An
// empty name selects anthropic; unrecognized names are assumed to be local
// ollama models.
func DetectProviderFromModel(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case m == "", strings.HasPrefix(m, "claude"):
		return ProviderAnthropic
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "chatgpt"),
		strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return ProviderOpenAI
	case strings.HasPrefix(m, "gemini"):
		return ProviderGemini
	default:
		return ProviderOllama
	}
}

// Package config manages application configuration.
package config

import (
	"time"

	"github.com/roboco-io/eventdesk/internal/backend"
	"github.com/roboco-io/eventdesk/internal/llm"
	"github.com/roboco-io/eventdesk/internal/table"
)

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Format          FormatConfig        `yaml:"format"`
	Table           TableConfig         `yaml:"table"`
	Backend         BackendConfig       `yaml:"backend"`
	Render          RenderConfig        `yaml:"render"`
	Log             LogConfig           `yaml:"log"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Endpoint  string `yaml:"endpoint,omitempty"` // for Ollama or custom endpoints
}

// FormatConfig controls assistant replies.
type FormatConfig struct {
	Temperature  float64 `yaml:"temperature"`
	Language     string  `yaml:"language"`
	SystemPrompt string  `yaml:"system_prompt,omitempty"`
}

// TableConfig holds the table view defaults.
type TableConfig struct {
	PageSize   int  `yaml:"page_size"`
	Sortable   bool `yaml:"sortable"`
	Searchable bool `yaml:"searchable"`
}

// EngineConfig converts the section into a table engine config.
func (t TableConfig) EngineConfig() table.Config {
	return table.Config{
		PageSize:   t.PageSize,
		Sortable:   t.Sortable,
		Searchable: t.Searchable,
	}
}

// BackendConfig locates the event backend.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// ClientConfig converts the section into a backend client config.
func (b BackendConfig) ClientConfig() backend.Config {
	return backend.Config{
		BaseURL: b.URL,
		Timeout: b.Timeout,
	}
}

// RenderConfig selects the default output target.
type RenderConfig struct {
	Target string `yaml:"target"` // terminal, markdown or html
	Dark   bool   `yaml:"dark"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: llm.ProviderAnthropic,
		Providers: map[string]Provider{
			llm.ProviderOpenAI: {
				APIKey:    "${" + llm.OpenAIEnvKey + "}",
				Model:     llm.DefaultOpenAIModel,
				MaxTokens: 4096,
			},
			llm.ProviderAnthropic: {
				APIKey:    "${" + llm.AnthropicEnvKey + "}",
				Model:     llm.DefaultAnthropicModel,
				MaxTokens: 4096,
			},
			llm.ProviderGemini: {
				APIKey:    "${" + llm.GeminiEnvKey + "}",
				Model:     llm.DefaultGeminiModel,
				MaxTokens: 4096,
			},
			llm.ProviderOllama: {
				Endpoint:  llm.DefaultOllamaEndpoint,
				Model:     llm.DefaultOllamaModel,
				MaxTokens: 4096,
			},
		},
		Format: FormatConfig{
			Temperature: 0.3,
			Language:    "ko",
		},
		Table: TableConfig{
			PageSize:   table.DefaultPageSize,
			Sortable:   true,
			Searchable: true,
		},
		Backend: BackendConfig{
			URL:     backend.DefaultBaseURL,
			Token:   "${" + EnvToken + "}",
			Timeout: backend.DefaultTimeout,
		},
		Render: RenderConfig{
			Target: "terminal",
		},
		Log: LogConfig{
			Level:   "warn",
			Console: true,
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}

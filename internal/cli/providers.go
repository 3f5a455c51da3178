package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/llm"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var providers = []providerInfo{
	{
		Name:         llm.ProviderAnthropic,
		DefaultModel: llm.DefaultAnthropicModel,
		EnvKey:       llm.AnthropicEnvKey,
		Description:  "Anthropic Claude API",
	},
	{
		Name:         llm.ProviderOpenAI,
		DefaultModel: llm.DefaultOpenAIModel,
		EnvKey:       llm.OpenAIEnvKey,
		Description:  "OpenAI GPT API",
	},
	{
		Name:         llm.ProviderGemini,
		DefaultModel: llm.DefaultGeminiModel,
		EnvKey:       llm.GeminiEnvKey,
		Description:  "Google Gemini API",
	},
	{
		Name:         llm.ProviderOllama,
		DefaultModel: llm.DefaultOllamaModel,
		EnvKey:       llm.OllamaEnvKey,
		Description:  "Local Ollama server (OpenAI 호환 API)",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "사용 가능한 LLM 프로바이더 목록",
	Long: `ask 명령에서 사용 가능한 LLM 프로바이더 목록을 표시합니다.

각 프로바이더는 해당 환경 변수에 API 키가 설정되어 있어야 사용할 수 있습니다.
(ollama는 로컬 서버로 API 키가 필요하지 않습니다)

사용 예시:
  eventdesk ask --provider anthropic "행사 일정 요약"
  eventdesk ask --provider openai --model gpt-4o "행사 일정 요약"`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "프로바이더\t기본 모델\t환경 변수\t상태\t설명")
	fmt.Fprintln(w, "---------\t--------\t-------\t----\t----")

	for _, p := range providers {
		status := checkProviderStatus(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, status, p.Description)
	}
}

func checkProviderStatus(p providerInfo) string {
	if p.Name == llm.ProviderOllama {
		// Ollama doesn't require API key
		return "✓ 사용가능"
	}

	if os.Getenv(p.EnvKey) != "" {
		return "✓ 설정됨"
	}
	return "✗ 미설정"
}

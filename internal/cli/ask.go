package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/config"
	"github.com/roboco-io/eventdesk/internal/llm"
	"github.com/roboco-io/eventdesk/internal/logging"
	"github.com/roboco-io/eventdesk/internal/parser/markdown"
)

var (
	askProvider string
	askModel    string
	askTarget   string
	askDark     bool
	askOutput   string
	askVerbose  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt...|->",
	Short: "어시스턴트에게 질문하고 답변을 렌더링",
	Long: `LLM 프로바이더에 질문을 보내고, 답변을 블록 단위로 파싱하여 렌더링합니다.

프로바이더 선택 순서:
  1. --provider 플래그
  2. --model 플래그의 모델 이름으로 자동 감지
  3. 설정 파일의 default_provider (EVENTDESK_MODEL로 변경 가능)

환경 변수:
  EVENTDESK_MODEL=xxx   모델 이름 (프로바이더 자동 감지)

예시:
  eventdesk ask "이번 달 행사 목록을 표로 정리해줘"
  eventdesk ask --model gpt-4o "참가자 안내문 초안"
  eventdesk ask --provider ollama --to markdown "체크리스트"
  echo "수료증 발급 절차" | eventdesk ask -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askProvider, "provider", "", "LLM 프로바이더 (anthropic, openai, gemini, ollama)")
	askCmd.Flags().StringVar(&askModel, "model", "", "LLM 모델 이름")
	askCmd.Flags().StringVar(&askTarget, "to", "", "출력 형식 (terminal, markdown, html)")
	askCmd.Flags().BoolVar(&askDark, "dark", false, "다크 모드 색상 사용")
	askCmd.Flags().StringVarP(&askOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "상세 출력 (토큰 사용량)")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	prompt := strings.Join(args, " ")
	if prompt == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("표준 입력 읽기 실패: %w", err)
		}
		prompt = string(data)
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("질문이 비어 있습니다")
	}

	registry, err := newRegistry(a)
	if err != nil {
		return a.fail("어시스턴트", err)
	}

	name := selectProvider(askProvider, askModel, a.cfg.DefaultProvider)
	opts := chatOptions(a.cfg, name)
	opts.Model = askModel

	a.log.Info().Str("provider", name).Str("model", opts.Model).Msg("sending prompt")
	res, err := registry.Chat(commandContext(cmd), name, prompt, opts)
	if err != nil {
		return a.fail("어시스턴트", fmt.Errorf("답변 생성 실패: %w", err))
	}

	if askVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "모델: %s, 토큰: 입력 %d / 출력 %d\n",
			res.Model, res.Usage.InputTokens, res.Usage.OutputTokens)
	}

	target := askTarget
	if target == "" {
		target = a.cfg.Render.Target
	}
	out, err := renderDocument(cmd, markdown.Parse(res.Content), target, askDark || a.cfg.Render.Dark, askOutput != "")
	if err != nil {
		return a.fail("렌더링", err)
	}

	return writeOutput(cmd, askOutput, out, "답변 저장", false)
}

// selectProvider picks the provider name from the flag, the model name or
// the configured default, in that order.
func selectProvider(flag, model, configured string) string {
	switch {
	case flag != "":
		return flag
	case model != "":
		return llm.DetectProviderFromModel(model)
	case configured != "":
		return configured
	default:
		return llm.DetectProviderFromModel("")
	}
}

// newRegistry registers every configured provider known to the llm package.
func newRegistry(a *app) (*llm.Registry, error) {
	registry := llm.NewRegistry()
	log := logging.Component(a.log, "llm")

	for _, info := range providers {
		pc, ok := a.cfg.GetProvider(info.Name)
		if !ok {
			continue
		}
		lc := llm.Config{
			APIKey:  pc.APIKey,
			Model:   pc.Model,
			BaseURL: pc.Endpoint,
			Log:     log,
		}

		var p llm.Provider
		switch info.Name {
		case llm.ProviderAnthropic:
			p = llm.NewAnthropic(lc)
		case llm.ProviderOpenAI:
			p = llm.NewOpenAI(lc)
		case llm.ProviderGemini:
			p = llm.NewGemini(lc)
		case llm.ProviderOllama:
			lc.BaseURL = config.GetEnvOrDefault(llm.OllamaEnvKey, pc.Endpoint)
			p = llm.NewOllama(lc)
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	if registry.Has(a.cfg.DefaultProvider) {
		if err := registry.SetDefault(a.cfg.DefaultProvider); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// chatOptions builds request options from the format section and the
// provider's token limit.
func chatOptions(cfg *config.Config, provider string) llm.ChatOptions {
	opts := llm.DefaultChatOptions()
	if cfg.Format.SystemPrompt != "" {
		opts.SystemPrompt = cfg.Format.SystemPrompt
	}
	switch cfg.Format.Language {
	case "ko":
		opts.SystemPrompt += "\nReply in Korean."
	case "en":
		opts.SystemPrompt += "\nReply in English."
	}
	opts.Temperature = cfg.Format.Temperature
	if pc, ok := cfg.GetProvider(provider); ok && pc.MaxTokens > 0 {
		opts.MaxTokens = pc.MaxTokens
	}
	return opts
}

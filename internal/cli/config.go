package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/eventdesk/internal/config"
	"github.com/roboco-io/eventdesk/internal/llm"
	"github.com/roboco-io/eventdesk/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `eventdesk 설정을 관리합니다.

설정 파일 위치: ~/.eventdesk/config.yaml

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.eventdesk/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  default_provider    기본 LLM 프로바이더 (anthropic, openai, gemini, ollama)
  format.temperature  LLM 온도 (0.0-1.0)
  format.language     답변 언어 (ko, en)
  table.page_size     기본 페이지 크기 (1 이상)
  backend.url         백엔드 주소
  render.target       기본 출력 형식 (terminal, markdown, html)
  render.dark         다크 모드 (true, false)
  log.level           로그 레벨 (debug, info, warn, error)

예시:
  eventdesk config set default_provider openai
  eventdesk config set format.temperature 0.5
  eventdesk config set table.page_size 25`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: (기본값 사용)\n\n")
	}

	// Display as YAML, hiding literal secrets
	cfg.Backend.Token = maskSecret(cfg.Backend.Token)
	for name, p := range cfg.Providers {
		p.APIKey = maskSecret(p.APIKey)
		cfg.Providers[name] = p
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	// Show environment variable overrides
	fmt.Fprintln(cmd.OutOrStdout(), "환경 변수:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key   string
		desc  string
		value string
	}{
		{config.EnvToken, "인증 토큰", maskAPIKey(os.Getenv(config.EnvToken))},
		{config.EnvBackendURL, "백엔드 주소", os.Getenv(config.EnvBackendURL)},
		{config.EnvModel, "모델 (프로바이더 자동 감지)", os.Getenv(config.EnvModel)},
		{config.EnvPageSize, "기본 페이지 크기", os.Getenv(config.EnvPageSize)},
		{config.EnvDark, "다크 모드", os.Getenv(config.EnvDark)},
		{config.EnvLogLevel, "로그 레벨", os.Getenv(config.EnvLogLevel)},
		{llm.AnthropicEnvKey, "Anthropic API 키", maskAPIKey(os.Getenv(llm.AnthropicEnvKey))},
		{llm.OpenAIEnvKey, "OpenAI API 키", maskAPIKey(os.Getenv(llm.OpenAIEnvKey))},
		{llm.GeminiEnvKey, "Google API 키", maskAPIKey(os.Getenv(llm.GeminiEnvKey))},
		{llm.OllamaEnvKey, "Ollama 호스트", os.Getenv(llm.OllamaEnvKey)},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if ev.value != "" {
			status = ev.value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := applySetting(cfg, key, value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

// applySetting updates one config key.
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "default_provider":
		validProviders := []string{llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini, llm.ProviderOllama}
		if !contains(validProviders, value) {
			return fmt.Errorf("유효하지 않은 프로바이더: %s (지원: %s)", value, strings.Join(validProviders, ", "))
		}
		cfg.DefaultProvider = value

	case "format.temperature":
		var temp float64
		if _, err := fmt.Sscanf(value, "%f", &temp); err != nil {
			return fmt.Errorf("유효하지 않은 온도 값: %s", value)
		}
		if temp < 0 || temp > 1 {
			return fmt.Errorf("온도는 0.0-1.0 범위여야 합니다: %f", temp)
		}
		cfg.Format.Temperature = temp

	case "format.language":
		validLanguages := []string{"ko", "en"}
		if !contains(validLanguages, value) {
			return fmt.Errorf("유효하지 않은 언어: %s (지원: %s)", value, strings.Join(validLanguages, ", "))
		}
		cfg.Format.Language = value

	case "table.page_size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 1 {
			return fmt.Errorf("페이지 크기는 1 이상의 정수여야 합니다: %s", value)
		}
		cfg.Table.PageSize = size

	case "backend.url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("유효하지 않은 백엔드 주소: %s", value)
		}
		cfg.Backend.URL = strings.TrimRight(value, "/")

	case "render.target":
		validTargets := []string{targetTerminal, targetMarkdown, targetHTML}
		if !contains(validTargets, value) {
			return fmt.Errorf("유효하지 않은 출력 형식: %s (지원: %s)", value, strings.Join(validTargets, ", "))
		}
		cfg.Render.Target = value

	case "render.dark":
		dark, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 값: %s (true 또는 false)", value)
		}
		cfg.Render.Dark = dark

	case "log.level":
		validLevels := []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
		if !contains(validLevels, value) {
			return fmt.Errorf("유효하지 않은 로그 레벨: %s (지원: %s)", value, strings.Join(validLevels, ", "))
		}
		cfg.Log.Level = value

	default:
		return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s", key, strings.Join(settingKeys, ", "))
	}
	return nil
}

var settingKeys = []string{
	"default_provider", "format.temperature", "format.language", "table.page_size",
	"backend.url", "render.target", "render.dark", "log.level",
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// maskSecret masks a literal secret but keeps ${VAR} references readable.
func maskSecret(s string) string {
	if strings.HasPrefix(s, "${") {
		return s
	}
	return maskAPIKey(s)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

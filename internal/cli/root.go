// Package cli implements the eventdesk command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/config"
	"github.com/roboco-io/eventdesk/internal/logging"
	"github.com/roboco-io/eventdesk/internal/notify"
)

var version = "dev"

var (
	rootConfigPath string
	rootLogLevel   string
	rootNoColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "eventdesk",
	Short: "이벤트 대시보드 콘솔",
	Long: `eventdesk는 이벤트 관리 대시보드의 핵심 기능을 터미널에서 제공합니다.

어시스턴트 메시지(마크다운 부분 집합)를 블록 단위로 파싱하여 렌더링하고,
이벤트/수료증/알림 목록을 정렬, 검색, 페이지 단위로 표시합니다.

예시:
  eventdesk render reply.md
  eventdesk table events.json --sort start_date --page 2
  eventdesk fetch events --filter Seoul
  eventdesk ask "다음 주 행사 일정을 표로 정리해줘"`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "eventdesk %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "설정 파일 경로 (기본: ~/.eventdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "색상 출력 비활성화")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command. ctx is cancelled on interrupt by the
// caller and reaches network calls and the interactive browser.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// app bundles what a command needs besides its flags.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	notify notify.Sink
}

func newLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	return config.NewLoader()
}

// loadApp loads the configuration, applies EVENTDESK_* overrides and
// builds the logger and notice sink.
func loadApp(cmd *cobra.Command) (*app, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("환경 변수 적용 실패: %w", err)
	}

	level := cfg.Log.Level
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	log := logging.New(logging.Options{
		Level:   level,
		Out:     cmd.ErrOrStderr(),
		Console: cfg.Log.Console,
	})
	log.Debug().Str("config", loader.ConfigPath()).Msg("configuration loaded")

	return &app{
		cfg:    cfg,
		log:    log,
		notify: notify.NewConsole(cmd.ErrOrStderr(), noColor()),
	}, nil
}

func noColor() bool {
	return rootNoColor || color.NoColor
}

// fail reports err through the notice sink and returns it.
func (a *app) fail(title string, err error) error {
	a.notify.Notify(err.Error(), notify.Error, title)
	return err
}

// readInput reads a file path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("표준 입력 읽기 실패: %w", err)
		}
		return data, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("파일을 찾을 수 없습니다: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("파일 읽기 실패: %w", err)
	}
	return data, nil
}

// writeOutput writes s to path, or to the command's stdout when path is
// empty. done is reported on stderr after a file write unless quiet.
func writeOutput(cmd *cobra.Command, path, s, done string, quiet bool) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", done, path)
	}
	return nil
}

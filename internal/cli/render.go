package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/ir"
	"github.com/roboco-io/eventdesk/internal/render"
)

// Render targets.
const (
	targetTerminal = "terminal"
	targetMarkdown = "markdown"
	targetHTML     = "html"
)

var (
	renderOutput  string
	renderTarget  string
	renderDark    bool
	renderVerbose bool
	renderQuiet   bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "어시스턴트 메시지를 렌더링",
	Long: `어시스턴트 메시지를 파싱한 뒤 터미널, 마크다운 또는 HTML로 출력합니다.

--dark 플래그는 색상만 바꾸며 블록 구조는 동일합니다.

환경 변수:
  EVENTDESK_DARK=true   다크 모드 색상 사용

예시:
  eventdesk render reply.md
  eventdesk render reply.md --to html -o reply.html
  eventdesk render transcript.json --to markdown
  eventdesk render reply.md --dark`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	renderCmd.Flags().StringVar(&renderTarget, "to", "", "출력 형식 (terminal, markdown, html)")
	renderCmd.Flags().BoolVar(&renderDark, "dark", false, "다크 모드 색상 사용")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "상세 출력")
	renderCmd.Flags().BoolVarP(&renderQuiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	target := renderTarget
	if target == "" {
		target = a.cfg.Render.Target
	}
	dark := renderDark || a.cfg.Render.Dark

	if !renderQuiet && renderVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "입력: %s\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "출력 형식: %s\n", target)
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return a.fail("렌더링", err)
	}

	if !renderQuiet && renderVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "파싱 완료: %d 블록\n", len(doc.Content))
	}

	out, err := renderDocument(cmd, doc, target, dark, renderOutput != "")
	if err != nil {
		return a.fail("렌더링", err)
	}

	return writeOutput(cmd, renderOutput, out, "렌더링 완료", renderQuiet)
}

// renderDocument renders doc for target. Terminal output written to a file
// is never coloured.
func renderDocument(cmd *cobra.Command, doc *ir.Document, target string, dark, toFile bool) (string, error) {
	switch target {
	case targetTerminal:
		// the colour profile follows the writer; io.Discard yields plain text
		w := cmd.OutOrStdout()
		if toFile || noColor() {
			w = io.Discard
		}
		return render.NewTerminal(w, dark).Render(doc)

	case targetMarkdown:
		return render.Markdown(doc), nil

	case targetHTML:
		return render.HTML(doc)

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s (지원: %s, %s, %s)",
			target, targetTerminal, targetMarkdown, targetHTML)
	}
}

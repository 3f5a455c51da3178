package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/eventdesk/internal/ir"
	"github.com/roboco-io/eventdesk/internal/parser"
	"github.com/roboco-io/eventdesk/internal/parser/markdown"
)

var (
	parseOutput      string
	parseFormat      string
	parsePrettyPrint bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "어시스턴트 메시지를 블록 구조로 파싱",
	Long: `어시스턴트 메시지(마크다운 부분 집합)를 파싱하여 블록 목록을 출력합니다.

입력은 마크다운 텍스트(.md, .txt) 또는 JSON 대화 기록(.json)입니다.
대화 기록에서는 assistant 메시지만 파싱하며, 메시지 사이에 빈 줄 블록을 넣습니다.
출력 형식은 JSON 또는 텍스트(요약)를 지원합니다.

예시:
  eventdesk parse reply.md
  eventdesk parse transcript.json -o blocks.json
  eventdesk parse reply.md --format text
  cat reply.md | eventdesk parse -`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "출력 형식 (json, text)")
	parseCmd.Flags().BoolVar(&parsePrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	output, err := formatOutput(doc, parseFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	return writeOutput(cmd, parseOutput, output, "파싱 완료", false)
}

// loadDocument reads a message file (or stdin) and parses every assistant
// message into one document.
func loadDocument(cmd *cobra.Command, path string) (*ir.Document, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	format := parser.FormatUnknown
	if path != "-" {
		format = parser.DetectFormat(path)
	}

	msgs, err := parser.ReadMessages(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("메시지 읽기 실패: %w", err)
	}

	return documentFromMessages(parser.AssistantMessages(msgs)), nil
}

func documentFromMessages(msgs []parser.Message) *ir.Document {
	doc := ir.NewDocument()
	for i, m := range msgs {
		if i > 0 {
			if last := doc.Last(); last != nil && last.Type != ir.BlockTypeSpacer {
				doc.AddSpacer()
			}
		}
		doc.Content = append(doc.Content, markdown.ParseBlocks(m.Content)...)
	}
	return doc
}

func formatOutput(doc *ir.Document, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if parsePrettyPrint {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "text":
		return formatAsText(doc), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

// formatAsText summarizes blocks one per line, tagged with their type.
func formatAsText(doc *ir.Document) string {
	var sb strings.Builder

	for _, block := range doc.Content {
		switch block.Type {
		case ir.BlockTypeHeading:
			fmt.Fprintf(&sb, "[제목 %d] %s\n", block.Heading.Level, block.Heading.Text)
		case ir.BlockTypeParagraph:
			fmt.Fprintf(&sb, "[문단] %s\n", block.Paragraph.Text)
		case ir.BlockTypeList:
			sb.WriteString("[목록]\n")
			sb.WriteString(formatListAsText(block.List))
		case ir.BlockTypeTable:
			fmt.Fprintf(&sb, "[표 %dx%d]\n", block.Table.Rows, block.Table.Cols)
			sb.WriteString(formatTableAsText(block.Table))
		case ir.BlockTypeSpacer:
			sb.WriteString("[빈 줄]\n")
		}
	}

	return sb.String()
}

func formatTableAsText(table *ir.TableBlock) string {
	var sb strings.Builder
	for i, row := range table.Cells {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(cell.Text)
		}
		sb.WriteString("\n")
		if i == 0 && table.HasHeader {
			for j := range row {
				if j > 0 {
					sb.WriteString(" | ")
				}
				sb.WriteString("---")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatListAsText(list *ir.ListBlock) string {
	var sb strings.Builder
	for i, item := range list.Items {
		prefix := "- "
		if list.Ordered {
			prefix = fmt.Sprintf("%d. ", list.Start+i)
		}
		sb.WriteString(prefix + item.Text + "\n")
	}
	return sb.String()
}

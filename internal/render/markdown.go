// Package render turns parsed block documents and derived table pages into
// markdown, HTML and styled terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/roboco-io/eventdesk/internal/ir"
)

// Markdown writes doc back as the compact markdown subset: one line per
// paragraph and a blank line per spacer. Parsing the result yields the same
// blocks.
func Markdown(doc *ir.Document) string {
	return writeMarkdown(doc, false)
}

// CommonMark writes doc with a blank line after every block so that a
// CommonMark processor keeps each paragraph, list and table separate.
func CommonMark(doc *ir.Document) string {
	return writeMarkdown(doc, true)
}

func writeMarkdown(doc *ir.Document, separate bool) string {
	var sb strings.Builder

	for _, block := range doc.Content {
		wrote := true
		switch block.Type {
		case ir.BlockTypeHeading:
			if block.Heading != nil {
				writeMarkdownHeading(&sb, block.Heading)
			}
		case ir.BlockTypeParagraph:
			if block.Paragraph != nil {
				sb.WriteString(block.Paragraph.Text + "\n")
			}
		case ir.BlockTypeList:
			if block.List != nil {
				writeMarkdownList(&sb, block.List)
			}
		case ir.BlockTypeTable:
			if block.Table != nil {
				writeMarkdownTable(&sb, block.Table)
			}
		case ir.BlockTypeSpacer:
			wrote = false
			if !separate {
				sb.WriteString("\n")
			}
		}
		if separate && wrote {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeMarkdownHeading(sb *strings.Builder, h *ir.Heading) {
	sb.WriteString(fmt.Sprintf("%s %s\n", strings.Repeat("#", h.Level), spansMarkdown(h.Spans, h.Text)))
}

func writeMarkdownList(sb *strings.Builder, l *ir.ListBlock) {
	for i, item := range l.Items {
		prefix := "- "
		if l.Ordered {
			prefix = fmt.Sprintf("%d. ", l.Start+i)
		}
		sb.WriteString(prefix + spansMarkdown(item.Spans, item.Text) + "\n")
	}
}

func writeMarkdownTable(sb *strings.Builder, t *ir.TableBlock) {
	if len(t.Cells) == 0 {
		return
	}

	for i, row := range t.Cells {
		sb.WriteString("|")
		for _, cell := range row {
			text := strings.ReplaceAll(cell.Text, "\n", " ")
			sb.WriteString(fmt.Sprintf(" %s |", text))
		}
		sb.WriteString("\n")

		if i == 0 && t.HasHeader {
			sb.WriteString("|")
			for range row {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
}

// spansMarkdown rebuilds inline markup from spans, falling back to the raw
// text when no spans were recorded.
func spansMarkdown(spans []ir.Span, fallback string) string {
	if len(spans) == 0 {
		return fallback
	}
	var sb strings.Builder
	for _, s := range spans {
		if s.Bold {
			sb.WriteString("**" + s.Text + "**")
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

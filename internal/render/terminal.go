package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roboco-io/eventdesk/internal/ir"
)

// Palette is the set of colours used for terminal output.
type Palette struct {
	Headings [3]lipgloss.Color
	Bold     lipgloss.Color
	Bullet   lipgloss.Color
}

var (
	// LightPalette suits light terminal backgrounds.
	LightPalette = Palette{
		Headings: [3]lipgloss.Color{"#1D4ED8", "#2563EB", "#3B82F6"},
		Bold:     "#111827",
		Bullet:   "#6B7280",
	}
	// DarkPalette suits dark terminal backgrounds.
	DarkPalette = Palette{
		Headings: [3]lipgloss.Color{"#93C5FD", "#BFDBFE", "#DBEAFE"},
		Bold:     "#F9FAFB",
		Bullet:   "#9CA3AF",
	}
)

// Terminal renders documents with ANSI styling. The colour profile is
// detected from the output writer, so plain writers get plain text.
type Terminal struct {
	Dark  bool
	Width int

	renderer *lipgloss.Renderer
}

// NewTerminal creates a terminal renderer for out.
func NewTerminal(out io.Writer, dark bool) *Terminal {
	r := lipgloss.NewRenderer(out)
	r.SetHasDarkBackground(dark)
	return &Terminal{Dark: dark, renderer: r}
}

func (t *Terminal) palette() Palette {
	if t.Dark {
		return DarkPalette
	}
	return LightPalette
}

func (t *Terminal) style() lipgloss.Style {
	if t.renderer == nil {
		return lipgloss.NewStyle()
	}
	return t.renderer.NewStyle()
}

// Render returns the styled text of doc.
func (t *Terminal) Render(doc *ir.Document) (string, error) {
	var sb strings.Builder
	p := t.palette()

	for _, block := range doc.Content {
		switch block.Type {
		case ir.BlockTypeHeading:
			if h := block.Heading; h != nil {
				level := min(max(h.Level, 1), 3)
				style := t.style().Bold(true).Foreground(p.Headings[level-1])
				if level == 1 {
					style = style.Underline(true)
				}
				sb.WriteString(style.Render(ir.SpansText(h.Spans)) + "\n")
			}

		case ir.BlockTypeParagraph:
			if para := block.Paragraph; para != nil {
				text := t.spans(para.Spans, para.Text, p)
				if t.Width > 0 {
					text = t.style().Width(t.Width).Render(text)
				}
				sb.WriteString(text + "\n")
			}

		case ir.BlockTypeList:
			if l := block.List; l != nil {
				marker := t.style().Foreground(p.Bullet)
				for i, item := range l.Items {
					prefix := "• "
					if l.Ordered {
						prefix = fmt.Sprintf("%d. ", l.Start+i)
					}
					sb.WriteString("  " + marker.Render(prefix) + t.spans(item.Spans, item.Text, p) + "\n")
				}
			}

		case ir.BlockTypeTable:
			if block.Table != nil {
				if err := writeTableBlock(&sb, block.Table); err != nil {
					return "", err
				}
			}

		case ir.BlockTypeSpacer:
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func (t *Terminal) spans(spans []ir.Span, fallback string, p Palette) string {
	if len(spans) == 0 {
		return fallback
	}
	bold := t.style().Bold(true).Foreground(p.Bold)

	var sb strings.Builder
	for _, s := range spans {
		if s.Bold {
			sb.WriteString(bold.Render(s.Text))
		} else {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

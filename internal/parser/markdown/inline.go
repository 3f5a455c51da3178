package markdown

import (
	"regexp"

	"github.com/roboco-io/eventdesk/internal/ir"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// ParseInline splits text into plain and bold spans. Unpaired "**" markers
// are kept literally in the surrounding plain span.
func ParseInline(text string) []ir.Span {
	spans := make([]ir.Span, 0)
	pos := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			spans = append(spans, ir.Plain(text[pos:m[0]]))
		}
		spans = append(spans, ir.Bold(text[m[2]:m[3]]))
		pos = m[1]
	}
	if pos < len(text) {
		spans = append(spans, ir.Plain(text[pos:]))
	}
	return spans
}

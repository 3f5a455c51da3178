package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/roboco-io/eventdesk/internal/ir"
)

var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// HTML renders doc as an HTML fragment.
func HTML(doc *ir.Document) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(CommonMark(doc)), &buf); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

package ir

import "strings"

// Span is a run of inline text, either plain or bold.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Plain creates a plain text span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Bold creates a bold text span.
func Bold(text string) Span {
	return Span{Text: text, Bold: true}
}

// SpansText returns the concatenated text of the spans without markers.
func SpansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Paragraph represents a single line of text.
type Paragraph struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// Heading represents a heading line of level 1 to 3.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// NewParagraph creates a new paragraph with the given source text.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{
		Text:  text,
		Spans: make([]Span, 0),
	}
}

// NewHeading creates a heading. The level is clamped to 1..3.
func NewHeading(level int, text string) *Heading {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &Heading{
		Level: level,
		Text:  text,
		Spans: make([]Span, 0),
	}
}

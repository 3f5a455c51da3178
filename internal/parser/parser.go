// Package parser provides interfaces and input handling for chat message parsers.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roboco-io/eventdesk/internal/ir"
)

// Parser is the interface for message parsers.
type Parser interface {
	// Parse converts message text into a block document. It never fails.
	Parse(source string) *ir.Document
}

// Format represents a message source format.
type Format int

const (
	FormatUnknown Format = iota
	FormatMarkdown
	FormatTranscript // JSON chat transcript
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatTranscript:
		return "transcript"
	default:
		return "unknown"
	}
}

// DetectFormat detects the source format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown", ".txt":
		return FormatMarkdown
	case ".json":
		return FormatTranscript
	default:
		return FormatUnknown
	}
}

// DetectFormatFromBytes sniffs the format from content. JSON objects and
// arrays are transcripts, anything else is markdown text.
func DetectFormatFromBytes(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatMarkdown
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return FormatTranscript
	}
	return FormatMarkdown
}

// Role constants for transcript messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReadMessages reads chat messages from r. Markdown input becomes a single
// assistant message; transcripts may be a message object or an array.
func ReadMessages(r io.Reader, format Format) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if format == FormatUnknown {
		format = DetectFormatFromBytes(data)
	}

	switch format {
	case FormatMarkdown:
		return []Message{{Role: RoleAssistant, Content: string(data)}}, nil

	case FormatTranscript:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var msg Message
			if err := json.Unmarshal(trimmed, &msg); err != nil {
				return nil, fmt.Errorf("failed to decode message: %w", err)
			}
			return []Message{msg}, nil
		}
		var msgs []Message
		if err := json.Unmarshal(trimmed, &msgs); err != nil {
			return nil, fmt.Errorf("failed to decode transcript: %w", err)
		}
		return msgs, nil

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// AssistantMessages filters messages down to assistant replies.
func AssistantMessages(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == RoleAssistant {
			out = append(out, m)
		}
	}
	return out
}

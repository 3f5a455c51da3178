// Package notify delivers short user-facing notices ("toasts").
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Severity of a notice.
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Sink receives notices.
type Sink interface {
	Notify(message string, severity Severity, title string)
}

// Console writes notices as single coloured lines.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer, noColor bool) *Console {
	return &Console{w: w, noColor: noColor}
}

// Notify implements Sink.
func (c *Console) Notify(message string, severity Severity, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := color.New(attribute(severity), color.Bold)
	if c.noColor {
		label.DisableColor()
	} else {
		label.EnableColor()
	}

	if title == "" {
		title = string(severity)
	}
	label.Fprintf(c.w, "[%s]", title)
	fmt.Fprintf(c.w, " %s\n", message)
}

func attribute(s Severity) color.Attribute {
	switch s {
	case Success:
		return color.FgGreen
	case Warning:
		return color.FgYellow
	case Error:
		return color.FgRed
	default:
		return color.FgCyan
	}
}

// Notice is one recorded notification.
type Notice struct {
	Message  string
	Severity Severity
	Title    string
}

// Recorder keeps notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Sink.
func (r *Recorder) Notify(message string, severity Severity, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Message: message, Severity: severity, Title: title})
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Discard drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(string, Severity, string) {}

package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_NoColor(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	c.Notify("3 events loaded", Success, "")
	c.Notify("session expired", Error, "인증")

	assert.Equal(t, "[success] 3 events loaded\n[인증] session expired\n", buf.String())
}

func TestConsole_Color(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false).Notify("slow backend", Warning, "")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "slow backend")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify("a", Info, "t")
	r.Notify("b", Error, "")

	notices := r.Notices()
	assert.Equal(t, []Notice{
		{Message: "a", Severity: Info, Title: "t"},
		{Message: "b", Severity: Error},
	}, notices)

	notices[0].Message = "changed"
	assert.Equal(t, "a", r.Notices()[0].Message)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard.Notify("x", Info, "") })
}

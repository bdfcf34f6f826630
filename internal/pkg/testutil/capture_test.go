package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() { fmt.Print("hello") })
	assert.Equal(t, "hello", out)
}

func TestCaptureStdout_Large(t *testing.T) {
	big := strings.Repeat("x", 256*1024)
	out := CaptureStdout(t, func() { fmt.Print(big) })
	assert.Len(t, out, len(big))
}

func TestLogRecorder(t *testing.T) {
	rec := NewLogRecorder("info")
	rec.Logger.Debug("hidden")
	rec.Logger.With("component", "runner").Info("shown", "k", "v")
	rec.Logger.Error("failed")

	entries := rec.Entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "runner", entries[0].String("component"))
	assert.Len(t, rec.Find(t, "shown"), 1)
	assert.Len(t, rec.AtLevel(t, "ERROR"), 1)
}

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Debug("debug msg")
	adapter.Info("info msg")
	adapter.Warn("warn msg")
	adapter.Error("error msg")

	out := buf.String()
	for _, s := range []string{"level=DEBUG", "level=INFO", "level=WARN", "level=ERROR"} {
		assert.Contains(t, out, s)
	}
}

func TestSlogAdapter_WithKeepsParentUntouched(t *testing.T) {
	var buf bytes.Buffer
	parent := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	parent.With("component", "runner").Info("child")
	parent.Info("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "component=runner")
	assert.NotContains(t, string(lines[1]), "component=runner")
}

func TestNewSlogAdapter_NilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.Same(t, slog.Default(), adapter.Slog())
}

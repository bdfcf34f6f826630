package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/Kargones/plugrun/internal/pkg/logging"

	"github.com/stretchr/testify/require"
)

// LogEntry — одна разобранная JSON запись лога.
type LogEntry map[string]any

// Level возвращает уровень записи ("INFO", "DEBUG", ...).
func (e LogEntry) Level() string { return e.String(slog.LevelKey) }

// Msg возвращает сообщение записи.
func (e LogEntry) Msg() string { return e.String(slog.MessageKey) }

// String возвращает строковый атрибут или пустую строку.
func (e LogEntry) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// LogRecorder пишет логи в JSON формате в буфер.
type LogRecorder struct {
	Buf    bytes.Buffer
	Logger *logging.SlogAdapter
	Level  *slog.LevelVar
}

// NewLogRecorder создаёт LogRecorder с начальным уровнем level ("debug", "info", ...).
func NewLogRecorder(level string) *LogRecorder {
	rec := &LogRecorder{}
	rec.Logger, rec.Level = logging.NewLeveled(logging.Config{Format: logging.FormatJSON, Level: level}, &rec.Buf)
	return rec
}

// Entries разбирает все записанные строки.
func (r *LogRecorder) Entries(t *testing.T) []LogEntry {
	t.Helper()
	var entries []LogEntry
	sc := bufio.NewScanner(bytes.NewReader(r.Buf.Bytes()))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e LogEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "invalid log line: %s", sc.Text())
		entries = append(entries, e)
	}
	require.NoError(t, sc.Err())
	return entries
}

// Find возвращает записи с указанным сообщением.
func (r *LogRecorder) Find(t *testing.T, msg string) []LogEntry {
	t.Helper()
	var found []LogEntry
	for _, e := range r.Entries(t) {
		if e.Msg() == msg {
			found = append(found, e)
		}
	}
	return found
}

// AtLevel возвращает записи указанного уровня.
func (r *LogRecorder) AtLevel(t *testing.T, level string) []LogEntry {
	t.Helper()
	var found []LogEntry
	for _, e := range r.Entries(t) {
		if e.Level() == level {
			found = append(found, e)
		}
	}
	return found
}

package logging

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ pflag.Value = (*LogLevel)(nil)

// TestLogLevel_Mapping проверяет фиксированную таблицу соответствия уровней.
func TestLogLevel_Mapping(t *testing.T) {
	tests := []struct {
		level LogLevel
		name  string
		slog  slog.Level
	}{
		{LogLevelOff, LevelOff, SlogLevelOff},
		{LogLevelError, LevelError, slog.LevelError},
		{LogLevelWarn, LevelWarn, slog.LevelWarn},
		{LogLevelInfo, LevelInfo, slog.LevelInfo},
		{LogLevelDebug, LevelDebug, slog.LevelDebug},
		{LogLevelAll, LevelTrace, SlogLevelTrace},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.name, tt.level.Name())
			assert.Equal(t, tt.slog, tt.level.Level())

			byName, ok := LogLevelFromName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.level, byName)

			bySlog, ok := LogLevelFromSlog(tt.slog)
			require.True(t, ok)
			assert.Equal(t, tt.level, bySlog)
		})
	}
}

func TestLogLevel_ZeroValueIsInfo(t *testing.T) {
	var l LogLevel
	assert.Equal(t, "INFO", l.String())
	assert.Equal(t, slog.LevelInfo, l.Level())
}

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, l)

	_, err = ParseLogLevel("VERBOSE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OFF, ERROR, WARN, INFO, DEBUG, ALL")
}

func TestLogLevel_UnknownLookups(t *testing.T) {
	_, ok := LogLevelFromName("verbose")
	assert.False(t, ok)

	_, ok = LogLevelFromSlog(slog.Level(2))
	assert.False(t, ok)
}

// TestLogLevel_PflagValue проверяет работу LogLevel как значения флага.
func TestLogLevel_PflagValue(t *testing.T) {
	level := LogLevelInfo
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&level, "logLevel", "log level")

	require.NoError(t, fs.Parse([]string{"--logLevel", "all"}))
	assert.Equal(t, LogLevelAll, level)
	assert.Equal(t, "level", fs.Lookup("logLevel").Value.Type())

	assert.Error(t, fs.Parse([]string{"--logLevel=loud"}))
}

func TestLogLevels_Order(t *testing.T) {
	assert.Equal(t, []LogLevel{LogLevelOff, LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug, LogLevelAll}, LogLevels())
}

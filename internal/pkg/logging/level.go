package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogLevel — уровень логирования, выбираемый флагом --logLevel.
// Нулевое значение трактуется как LogLevelInfo.
//
// Каждый уровень однозначно отображается в две стороны:
//   - на структурированное имя уровня (Config.Level: "off", "error", ...)
//   - на slog.Level, применяемый к логгеру загрузчика и к мосту пакета log
type LogLevel string

// Допустимые значения LogLevel.
const (
	LogLevelOff   LogLevel = "OFF"
	LogLevelError LogLevel = "ERROR"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelAll   LogLevel = "ALL"
)

// levelMapping — фиксированная таблица соответствия уровней.
type levelMapping struct {
	level LogLevel
	name  string
	slog  slog.Level
}

var levelTable = []levelMapping{
	{LogLevelOff, LevelOff, SlogLevelOff},
	{LogLevelError, LevelError, slog.LevelError},
	{LogLevelWarn, LevelWarn, slog.LevelWarn},
	{LogLevelInfo, LevelInfo, slog.LevelInfo},
	{LogLevelDebug, LevelDebug, slog.LevelDebug},
	{LogLevelAll, LevelTrace, SlogLevelTrace},
}

// LogLevels возвращает все уровни в порядке возрастания подробности.
func LogLevels() []LogLevel {
	levels := make([]LogLevel, 0, len(levelTable))
	for _, m := range levelTable {
		levels = append(levels, m.level)
	}
	return levels
}

// ParseLogLevel разбирает имя уровня без учёта регистра ("info", "INFO").
func ParseLogLevel(s string) (LogLevel, error) {
	for _, m := range levelTable {
		if strings.EqualFold(string(m.level), s) {
			return m.level, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q, expected one of %s", s, joinLevels())
}

// LogLevelFromName возвращает LogLevel по структурированному имени ("trace" → ALL).
func LogLevelFromName(name string) (LogLevel, bool) {
	for _, m := range levelTable {
		if m.name == name {
			return m.level, true
		}
	}
	return "", false
}

// LogLevelFromSlog возвращает LogLevel, которому соответствует ровно этот slog.Level.
func LogLevelFromSlog(level slog.Level) (LogLevel, bool) {
	for _, m := range levelTable {
		if m.slog == level {
			return m.level, true
		}
	}
	return "", false
}

func (l LogLevel) mapping() levelMapping {
	for _, m := range levelTable {
		if m.level == l {
			return m
		}
	}
	// нулевое и неизвестные значения
	return levelTable[3]
}

// Name возвращает структурированное имя уровня ("info", "trace", ...).
func (l LogLevel) Name() string {
	return l.mapping().name
}

// Level возвращает соответствующий slog.Level.
func (l LogLevel) Level() slog.Level {
	return l.mapping().slog
}

// String реализует fmt.Stringer и pflag.Value.
func (l LogLevel) String() string {
	return string(l.mapping().level)
}

// Set реализует pflag.Value.
func (l *LogLevel) Set(s string) error {
	parsed, err := ParseLogLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type реализует pflag.Value.
func (l *LogLevel) Type() string {
	return "level"
}

func joinLevels() string {
	names := make([]string, 0, len(levelTable))
	for _, m := range levelTable {
		names = append(names, string(m.level))
	}
	return strings.Join(names, ", ")
}

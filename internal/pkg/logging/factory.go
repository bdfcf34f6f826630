package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger с заданной конфигурацией.
// Возвращает SlogAdapter настроенный согласно config.
//
// Поддерживаемые режимы вывода (config.Output):
//   - "stderr" или "" (default): логи пишутся в os.Stderr
//   - "file": логи пишутся в файл с автоматической ротацией через lumberjack
func NewLogger(config Config) Logger {
	return NewLoggerWithWriter(config, OutputWriter(config))
}

// OutputWriter выбирает io.Writer для логов на основе config.Output.
// При неизвестном output пишет предупреждение и использует stderr.
func OutputWriter(config Config) io.Writer {
	switch config.Output {
	case OutputFile:
		return newLumberjackWriter(config)
	case OutputStderr, "":
		return os.Stderr
	default:
		_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
			"WARNING: unknown logging output %q, falling back to stderr\n", config.Output)
		return os.Stderr
	}
}

// newLumberjackWriter создаёт io.Writer с ротацией на основе lumberjack.
// Автоматически создаёт директорию для файла логов если не существует.
// При пустом FilePath возвращает os.Stderr как fallback.
func newLumberjackWriter(config Config) io.Writer {
	if config.FilePath == "" {
		_, _ = os.Stderr.WriteString("WARNING: logging output=file but filePath is empty, falling back to stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr
	}

	dir := filepath.Dir(config.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
				"WARNING: cannot create log directory %q: %v, falling back to stderr\n", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize, // MB
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge, // days
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger с заданной конфигурацией и writer.
// Используется для тестирования и гибкой настройки вывода.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	logger, _ := NewLeveled(config, w)
	return logger
}

// NewLeveled создаёт SlogAdapter, минимальный уровень которого хранится
// в возвращаемом slog.LevelVar и может меняться во время работы
// (см. LevelSettings). Начальный уровень берётся из config.Level.
func NewLeveled(config Config, w io.Writer) (*SlogAdapter, *slog.LevelVar) {
	level := NewLevelVar(config)
	return NewWithLevelVar(config, w, level), level
}

// NewLevelVar создаёт slog.LevelVar с начальным уровнем из config.Level.
func NewLevelVar(config Config) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(parseLevel(config.Level))
	return level
}

// NewWithLevelVar создаёт SlogAdapter, фильтрующий записи по level.
// config.Level не используется: уровень уже задан в level.
func NewWithLevelVar(config Config, w io.Writer, level *slog.LevelVar) *SlogAdapter {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevelName}
	var handler slog.Handler

	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// replaceLevelName выводит TRACE вместо "DEBUG-4" для уровня ниже DEBUG.
func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= SlogLevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// parseLevel конвертирует строковый уровень в slog.Level.
// При неизвестном значении возвращает slog.LevelInfo.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelOff:
		return SlogLevelOff
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug:
		return slog.LevelDebug
	case LevelTrace:
		return SlogLevelTrace
	default:
		// Неизвестный уровень → используем info как безопасный default
		return slog.LevelInfo
	}
}

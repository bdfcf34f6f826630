package logging

import "log/slog"

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования (структурированные имена).
const (
	LevelOff   = "off"
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
	LevelTrace = "trace"
)

// Дополнительные уровни slog, которых нет в stdlib.
const (
	// SlogLevelOff выше любого уровня записи — ничего не логируется.
	SlogLevelOff = slog.Level(12)
	// SlogLevelTrace ниже DEBUG — логируется всё.
	SlogLevelTrace = slog.Level(-8)
)

// Куда пишутся логи.
const (
	OutputStderr = "stderr"
	OutputFile   = "file" // с ротацией через lumberjack
)

// Значения по умолчанию; internal/config повторяет их в env-default.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/plugrun.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // дней
	DefaultCompress   = true
)

// Config описывает вывод логов. Level задаёт уровень до разбора --logLevel.
// MaxSize, MaxBackups, MaxAge и Compress действуют только при Output=file.
type Config struct {
	Format string // FormatJSON или FormatText
	Level  string // LevelOff ... LevelTrace
	Output string // OutputStderr или OutputFile

	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// DefaultConfig возвращает Config из Default* констант.
func DefaultConfig() Config {
	return Config{
		Format:     DefaultFormat,
		Level:      DefaultLevel,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

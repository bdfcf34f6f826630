package logging

import "log/slog"

// LogSettings применяет уровень логирования, выбранный при запуске.
// Загрузчик вызывает SetLogLevel один раз, сразу после разбора своих аргументов.
type LogSettings interface {
	SetLogLevel(level LogLevel)
}

// Compile-time проверки реализации интерфейсов.
var (
	_ LogSettings = (*LevelSettings)(nil)
	_ LogSettings = (*GlobalSettings)(nil)
)

// LevelSettings меняет уровень одного логгера через его slog.LevelVar.
// Глобальное состояние процесса не затрагивается.
type LevelSettings struct {
	level *slog.LevelVar
}

// NewLevelSettings создаёт LevelSettings для логгера, созданного NewLeveled.
func NewLevelSettings(level *slog.LevelVar) *LevelSettings {
	return &LevelSettings{level: level}
}

// SetLogLevel реализует LogSettings.
func (s *LevelSettings) SetLogLevel(level LogLevel) {
	s.level.Set(level.Level())
}

// GlobalSettings дополнительно устанавливает логгер как slog.Default и
// выставляет уровень моста пакета log (log.Printf и т.п.) через
// slog.SetLogLoggerLevel: вывод log пишется на уровне порога и виден
// при любом уровне, кроме OFF. Используется в cmd/plugrun.
type GlobalSettings struct {
	LevelSettings
	logger *slog.Logger
}

// NewGlobalSettings создаёт GlobalSettings.
func NewGlobalSettings(level *slog.LevelVar, logger *slog.Logger) *GlobalSettings {
	return &GlobalSettings{LevelSettings: LevelSettings{level: level}, logger: logger}
}

// SetLogLevel реализует LogSettings.
func (s *GlobalSettings) SetLogLevel(level LogLevel) {
	s.LevelSettings.SetLogLevel(level)
	if s.logger != nil {
		slog.SetDefault(s.logger)
	}
	bridge := level.Level()
	if level == LogLevelOff {
		// ниже порога OFF, поэтому вывод log отбрасывается
		bridge = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(bridge)
}

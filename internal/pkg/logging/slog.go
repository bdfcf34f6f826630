package logging

import "log/slog"

// SlogAdapter — Logger поверх *slog.Logger. Методы уровней берутся
// у встроенного slog.Logger.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter оборачивает logger. nil заменяется на slog.Default()
// с предупреждением в лог.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
		logger.Warn("logging: nil slog.Logger passed to NewSlogAdapter, using default")
	}
	return &SlogAdapter{Logger: logger}
}

// With реализует Logger.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{Logger: s.Logger.With(args...)}
}

// Slog возвращает нижележащий slog.Logger для GlobalSettings.
func (s *SlogAdapter) Slog() *slog.Logger {
	return s.Logger
}

// Package logging предоставляет интерфейс и реализации для структурированного логирования,
// а также перечисление уровней логирования загрузчика и его отображение на уровни slog.
package logging

// Logger — структурированный логгер загрузчика. Аргументы после сообщения
// передаются парами ключ-значение, как в slog:
//
//	logger.Info("loading module", "module", name)
//
// Вывод идёт только в stderr или файл: stdout занят диагностикой аргументов
// и выводом самих плагинов.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает логгер, добавляющий args к каждой записи.
	With(args ...any) Logger
}

// NopLogger отбрасывает все записи.
type NopLogger struct{}

// NewNopLogger возвращает NopLogger.
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// With возвращает тот же NopLogger.
func (n NopLogger) With(...any) Logger { return n }

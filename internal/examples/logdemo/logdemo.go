// Package logdemo пишет сообщения всех уровней через slog и через
// стандартный пакет log, чтобы показать действие --logLevel.
package logdemo

import (
	"context"
	"log"
	"log/slog"

	"github.com/Kargones/plugrun/internal/registry"
)

func init() {
	registry.RegisterType(NewLogSomething)
}

// levelTrace — уровень ALL.
const levelTrace = slog.Level(-8)

// LogSomething — точка входа без зависимостей.
type LogSomething struct{}

// NewLogSomething создаёт LogSomething.
func NewLogSomething() *LogSomething {
	return &LogSomething{}
}

// Run реализует inject.Runnable.
func (*LogSomething) Run(ctx context.Context) error {
	logger := slog.Default()
	logger.InfoContext(ctx, "slog-info")
	logger.DebugContext(ctx, "slog-debug")
	logger.ErrorContext(ctx, "slog-error")
	logger.WarnContext(ctx, "slog-warn")
	logger.Log(ctx, levelTrace, "slog-trace")

	// стандартный log пишется на уровне, заданном slog.SetLogLoggerLevel
	log.Print("log-message")
	return nil
}

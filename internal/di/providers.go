package di

import (
	"io"
	"log/slog"

	"github.com/Kargones/plugrun/internal/config"
	"github.com/Kargones/plugrun/internal/pkg/alerting"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/metrics"
	"github.com/Kargones/plugrun/internal/pkg/tracing"
)

// LogWriter — явный вывод логов. nil означает вывод из LoggingConfig
// (stderr или файл с ротацией).
type LogWriter io.Writer

// ProvideLogLevel создаёт LevelVar с начальным уровнем из LoggingConfig.
// Уровень действует до разбора --logLevel.
func ProvideLogLevel(cfg *config.Config) *slog.LevelVar {
	return logging.NewLevelVar(loggingConfig(cfg))
}

// ProvideLogger создаёт логгер на основе LoggingConfig.
// Если LoggingConfig пуст, используются значения по умолчанию:
//   - Format: "text"
//   - Output: "stderr"
func ProvideLogger(cfg *config.Config, w LogWriter, level *slog.LevelVar) *logging.SlogAdapter {
	logCfg := loggingConfig(cfg)
	var out io.Writer = w
	if out == nil {
		out = logging.OutputWriter(logCfg)
	}
	return logging.NewWithLevelVar(logCfg, out, level)
}

// loggingConfig подставляет значения по умолчанию вместо пустых полей.
func loggingConfig(cfg *config.Config) logging.Config {
	logCfg := logging.DefaultConfig()
	if cfg == nil {
		return logCfg
	}

	lc := cfg.Logging.ToLogging()
	if lc.Level != "" {
		logCfg.Level = lc.Level
	}
	if lc.Format != "" {
		logCfg.Format = lc.Format
	}
	if lc.Output != "" {
		logCfg.Output = lc.Output
	}
	if lc.FilePath != "" {
		logCfg.FilePath = lc.FilePath
	}
	// размер 0 MB не имеет смысла для lumberjack
	if lc.MaxSize > 0 {
		logCfg.MaxSize = lc.MaxSize
	}
	if lc.MaxBackups > 0 {
		logCfg.MaxBackups = lc.MaxBackups
	}
	if lc.MaxAge > 0 {
		logCfg.MaxAge = lc.MaxAge
	}
	logCfg.Compress = lc.Compress
	return logCfg
}

// ProvideTraceID генерирует trace_id запуска (32 hex символа).
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе MetricsConfig.
// При выключенных метриках и при ошибке создания возвращает NopCollector;
// ошибка пишется в лог.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.ToMetrics(), logger)
	if err != nil {
		logger.Error("cannot create metrics collector, using nop collector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт и регистрирует OTel TracerProvider.
// При выключенном трейсинге и при ошибке инициализации возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) tracing.ShutdownFunc {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.ToTracing(), logger)
	if err != nil {
		logger.Error("cannot initialize tracing, using nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideAlerter создаёт Alerter на основе AlertingConfig.
// При выключенном алертинге и при невалидной конфигурации возвращает NopAlerter.
func ProvideAlerter(cfg *config.Config, logger logging.Logger) alerting.Alerter {
	if cfg == nil {
		return alerting.NewNopAlerter()
	}

	alerter, err := alerting.NewAlerter(cfg.Alerting.ToAlerting(), logger)
	if err != nil {
		logger.Error("cannot create alerter, using nop alerter",
			slog.String("error", err.Error()),
		)
		return alerting.NewNopAlerter()
	}
	return alerter
}

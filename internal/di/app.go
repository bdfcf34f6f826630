package di

import (
	"log/slog"

	"github.com/Kargones/plugrun/internal/config"
	"github.com/Kargones/plugrun/internal/pkg/alerting"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/metrics"
	"github.com/Kargones/plugrun/internal/pkg/tracing"
)

// Infra содержит инфраструктуру одного запуска загрузчика.
// Создаётся через Wire DI в InitializeInfra().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в Infra struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type Infra struct {
	// Config содержит конфигурацию загрузчика.
	// Передаётся извне через InitializeInfra().
	Config *config.Config

	// Logger — базовый логгер запуска, из него выводятся логгеры компонентов.
	Logger *logging.SlogAdapter

	// LogLevel — минимальный уровень Logger; меняется после разбора --logLevel.
	LogLevel *slog.LevelVar

	// MetricsCollector собирает метрики загрузки модулей и выполнения Runnable.
	// Если метрики отключены — используется NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Если трейсинг отключён — nop function.
	TracerShutdown tracing.ShutdownFunc

	// Alerter отправляет алерт о необработанном сбое запуска.
	// Если алертинг отключён — используется NopAlerter.
	Alerter alerting.Alerter

	// TraceID — идентификатор запуска для корреляции логов.
	TraceID string
}

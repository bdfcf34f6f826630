// Package metrics собирает метрики одного запуска загрузчика (загрузка модулей,
// выполнение Runnable) и отправляет их одним Push в Prometheus Pushgateway
// в конце запуска.
package metrics

import (
	"context"
	"time"

	"github.com/Kargones/plugrun/internal/pkg/logging"
)

// Значения label status для plugrun_module_load_total.
const (
	StatusLoaded   = "loaded"
	StatusRejected = "rejected"
)

// Collector собирает метрики запуска.
type Collector interface {
	RecordModule(module, status string)
	RecordRun(runnable string, duration time.Duration, success bool)

	// Push отправляет накопленное в Pushgateway. Ошибки отправки
	// логируются, возвращается всегда nil.
	Push(ctx context.Context) error
}

// NopCollector ничего не собирает. Используется при выключенных метриках.
type NopCollector struct{}

// NewNopCollector возвращает NopCollector.
func NewNopCollector() Collector { return NopCollector{} }

func (NopCollector) RecordModule(string, string)           {}
func (NopCollector) RecordRun(string, time.Duration, bool) {}
func (NopCollector) Push(context.Context) error            { return nil }

// NewCollector возвращает NopCollector при выключенных метриках и
// PrometheusCollector для валидной включённой конфигурации.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewPrometheusCollector(config, logger)
}

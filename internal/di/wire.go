//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/plugrun/internal/config"
	"github.com/Kargones/plugrun/internal/pkg/logging"
)

//go:generate wire

// ProviderSet объединяет провайдеры инфраструктуры загрузчика.
//
// При добавлении новых провайдеров:
// 1. Создать функцию провайдера в providers.go
// 2. Добавить её в ProviderSet
// 3. Перегенерировать: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	wire.Bind(new(logging.Logger), new(*logging.SlogAdapter)),
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideAlerter,
	wire.Struct(new(Infra), "*"),
)

// InitializeInfra создаёт Infra через Wire DI. cfg загружается заранее
// (config.Load), w — явный вывод логов или nil.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	infra, err := di.InitializeInfra(cfg, nil)
func InitializeInfra(cfg *config.Config, w LogWriter) (*Infra, error) {
	wire.Build(ProviderSet)
	return nil, nil
}

package tracing

import (
	"context"
	"net/url"

	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/urlutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc отправляет накопленные спаны и останавливает экспорт.
type ShutdownFunc func(context.Context) error

// NewNopTracerProvider возвращает ShutdownFunc без действия.
func NewNopTracerProvider() ShutdownFunc {
	return func(context.Context) error { return nil }
}

// NewTracerProvider регистрирует глобальный TracerProvider с OTLP HTTP
// экспортом. Выключенный трейсинг оставляет глобальный noop provider.
func NewTracerProvider(cfg Config, logger logging.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logger.Debug("tracing disabled, using nop provider")
		return NewNopTracerProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracehttp.New(context.Background(), exporterOptions(cfg)...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Debug("tracing initialized",
		"endpoint", urlutil.MaskEndpoint(cfg.Endpoint),
		"service_name", cfg.ServiceName,
		"sampling_rate", cfg.SamplingRate,
	)
	return tp.Shutdown, nil
}

// newResource: атрибуты сервиса без schema URL, иначе Merge с
// resource.Default() падает на разных версиях semconv.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
}

// exporterOptions: WithEndpoint ждёт host:port, поэтому схема и путь
// отбрасываются.
func exporterOptions(cfg Config) []otlptracehttp.Option {
	host := cfg.Endpoint
	if u, err := url.Parse(cfg.Endpoint); err == nil && u.Host != "" {
		host = u.Host
	}
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(host),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// newSampler применяет rate и к удалённому родителю: родитель из
// ContextWithOTelTraceID всегда помечен sampled.
func newSampler(rate float64) sdktrace.Sampler {
	ratio := sdktrace.TraceIDRatioBased(rate)
	return sdktrace.ParentBased(ratio, sdktrace.WithRemoteParentSampled(ratio))
}

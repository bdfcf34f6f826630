package tracing

import (
	"context"

	"github.com/Kargones/plugrun/internal/constants"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Имена спанов фаз загрузки.
const (
	SpanBootstrap         = "bootstrap"
	SpanDiscover          = "discover"
	SpanResolveEntryPoint = "resolve-entrypoint"
	SpanRun               = "run"
)

// Start начинает спан через глобальный TracerProvider.
// Пока трейсинг выключен, спаны noop.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(constants.ModulePath).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End завершает спан, помечая его ошибкой при err != nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Package tracing отвечает за trace ID запуска и OpenTelemetry спаны фаз загрузки.
//
// Trace ID — 16 байт в hex (32 символа), формат W3C Trace Context. Один ID
// попадает и в атрибут логов trace_id, и в OTel спаны запуска:
//
//	traceID := tracing.GenerateTraceID()
//	ctx := tracing.WithTraceID(ctx, traceID)
//	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
)

var fallbackSeq atomic.Uint64

// GenerateTraceID возвращает случайный trace ID. Если crypto/rand
// недоступен, ID собирается из времени и счётчика.
func GenerateTraceID() string {
	var id [16]byte
	if _, err := rand.Read(id[:]); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(id[:])
}

func fallbackTraceID() string {
	var id [16]byte
	binary.BigEndian.PutUint64(id[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(id[8:], fallbackSeq.Add(1))
	return hex.EncodeToString(id[:])
}

type traceIDKey struct{}

// WithTraceID сохраняет trace ID запуска в ctx.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext возвращает trace ID запуска или "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// ContextWithOTelTraceID делает traceIDHex удалённым родителем: спаны из
// возвращённого контекста получают тот же trace ID, что и логи.
// Невалидный hex оставляет ctx как есть.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	tid, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	return trace.ContextWithRemoteSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))
}

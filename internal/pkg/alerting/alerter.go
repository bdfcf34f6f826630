// Package alerting сообщает о фатальных сбоях запуска во внешние системы
// через HTTP webhook. Алерт уходит не больше одного раза за запуск.
package alerting

import (
	"context"
	"time"
)

// Severity — критичность алерта.
type Severity int

// Уровни критичности.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// ChannelWebhook — имя канала в логах и конфигурации.
const ChannelWebhook = "webhook"

var severityNames = [...]string{
	SeverityInfo:     "INFO",
	SeverityWarning:  "WARNING",
	SeverityCritical: "CRITICAL",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "UNKNOWN"
	}
	return severityNames[s]
}

// Alert описывает сбой запуска.
type Alert struct {
	ErrorCode string // CATEGORY.SPECIFIC
	Message   string
	TraceID   string // совпадает с trace_id в логах
	Timestamp time.Time
	Runnable  string // пусто, если --run ещё не разобран
	Severity  Severity
}

// Alerter доставляет алерты. Ошибки доставки логируются реализацией
// и не возвращаются: недоступный канал не меняет код завершения.
type Alerter interface {
	Send(ctx context.Context, alert Alert) error
}

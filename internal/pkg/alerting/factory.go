package alerting

import (
	"context"

	"github.com/Kargones/plugrun/internal/pkg/logging"
)

// NopAlerter отбрасывает алерты. Используется при выключенном алертинге.
type NopAlerter struct{}

// NewNopAlerter возвращает NopAlerter.
func NewNopAlerter() Alerter { return NopAlerter{} }

// Send реализует Alerter.
func (NopAlerter) Send(context.Context, Alert) error { return nil }

// NewAlerter выбирает реализацию по конфигурации: при выключенном алертинге
// NopAlerter, иначе WebhookAlerter после проверки конфигурации.
func NewAlerter(config Config, logger logging.Logger) (Alerter, error) {
	if !config.Enabled {
		return NewNopAlerter(), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewWebhookAlerter(config.Webhook, logger), nil
}

package alerting

import (
	"errors"
	"net/url"
	"time"
)

// Ошибки проверки конфигурации.
var (
	ErrWebhookURLRequired    = errors.New("alerting: at least one webhook url is required when alerting is enabled")
	ErrWebhookURLInvalid     = errors.New("alerting: webhook url has invalid format (must be http(s) with host)")
	ErrWebhookHeaderInvalid  = errors.New("alerting: webhook header contains invalid characters")
	ErrWebhookRetriesInvalid = errors.New("alerting: webhook max retries must not be negative")
)

// Значения по умолчанию для Webhook конфигурации.
const (
	// DefaultWebhookTimeout — таймаут HTTP запросов по умолчанию.
	DefaultWebhookTimeout = 10 * time.Second

	// DefaultMaxRetries — количество повторных попыток по умолчанию.
	DefaultMaxRetries = 3
)

// Config содержит настройки алертинга.
type Config struct {
	// Enabled — включён ли алертинг (по умолчанию false).
	Enabled bool

	// Webhook — конфигурация webhook канала.
	Webhook WebhookConfig
}

// WebhookConfig содержит настройки webhook канала.
type WebhookConfig struct {
	// URLs — адреса, на которые отправляется POST с JSON.
	URLs []string

	// Headers — дополнительные HTTP заголовки.
	Headers map[string]string

	// Timeout — таймаут одного HTTP запроса.
	Timeout time.Duration

	// MaxRetries — количество повторов при сетевых ошибках и 5xx.
	MaxRetries int
}

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Webhook: WebhookConfig{
			Timeout:    DefaultWebhookTimeout,
			MaxRetries: DefaultMaxRetries,
		},
	}
}

// Validate проверяет конфигурацию. Выключенный алертинг всегда корректен.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	return c.Webhook.Validate()
}

// Validate проверяет корректность WebhookConfig.
func (w *WebhookConfig) Validate() error {
	if len(w.URLs) == 0 {
		return ErrWebhookURLRequired
	}
	for _, rawURL := range w.URLs {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return ErrWebhookURLInvalid
		}
		// только http и https
		if u.Scheme != "http" && u.Scheme != "https" {
			return ErrWebhookURLInvalid
		}
	}
	// CR, LF и прочие управляющие символы запрещены (RFC 7230)
	for key, value := range w.Headers {
		if containsInvalidHTTPHeaderChars(key) || containsInvalidHTTPHeaderChars(value) {
			return ErrWebhookHeaderInvalid
		}
	}
	if w.MaxRetries < 0 {
		return ErrWebhookRetriesInvalid
	}
	return nil
}

// containsInvalidHTTPHeaderChars проверяет наличие запрещённых символов в HTTP заголовке.
// HTAB разрешён.
func containsInvalidHTTPHeaderChars(s string) bool {
	for _, r := range s {
		if r == 0x09 {
			continue
		}
		if r <= 0x1f || r == 0x7f {
			return true
		}
	}
	return false
}

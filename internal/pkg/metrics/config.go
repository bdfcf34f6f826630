package metrics

import (
	"errors"
	"net/url"
	"time"

	"github.com/Kargones/plugrun/internal/constants"
)

// Ошибки проверки Config.
var (
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	ErrPushgatewayURLInvalid  = errors.New("pushgateway URL has invalid format")
	ErrJobNameRequired        = errors.New("job name is required")
	ErrInvalidTimeout         = errors.New("timeout must be positive")
)

// Config — настройки отправки метрик в Pushgateway.
type Config struct {
	Enabled        bool
	PushgatewayURL string // например "http://pushgateway:9091"
	JobName        string
	Timeout        time.Duration

	// InstanceLabel заменяет hostname в grouping key.
	InstanceLabel string
}

// DefaultConfig возвращает выключенную конфигурацию с job plugrun.
func DefaultConfig() Config {
	return Config{JobName: constants.AppName, Timeout: 10 * time.Second}
}

// Validate проверяет включённую конфигурацию.
func (c *Config) Validate() error {
	switch {
	case !c.Enabled:
		return nil
	case c.PushgatewayURL == "":
		return ErrPushgatewayURLRequired
	case !hasSchemeAndHost(c.PushgatewayURL):
		return ErrPushgatewayURLInvalid
	case c.JobName == "":
		return ErrJobNameRequired
	case c.Timeout <= 0:
		return ErrInvalidTimeout
	}
	return nil
}

func hasSchemeAndHost(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

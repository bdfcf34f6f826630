package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Kargones/plugrun/internal/constants"
)

// Ошибки валидации конфигурации трейсинга.
var (
	ErrTracingEndpointRequired      = errors.New("tracing: endpoint is required when tracing is enabled")
	ErrTracingServiceNameRequired   = errors.New("tracing: service name is required")
	ErrTracingTimeoutInvalid        = errors.New("tracing: timeout must be positive")
	ErrTracingEndpointInvalidFormat = errors.New("tracing: endpoint must be a URL with host (e.g. http://jaeger:4318)")
	ErrTracingSamplingRateInvalid   = errors.New("tracing: sampling rate must be within [0.0, 1.0]")
)

// Config — настройки OTLP экспорта спанов загрузчика.
type Config struct {
	Enabled  bool
	Endpoint string // URL OTLP HTTP, например "http://jaeger:4318"
	Insecure bool   // HTTP вместо HTTPS
	Timeout  time.Duration

	// ServiceName, Version и Environment попадают в resource attributes.
	ServiceName string
	Version     string
	Environment string

	// SamplingRate — доля сэмплируемых трейсов в [0, 1].
	SamplingRate float64
}

// DefaultConfig возвращает выключенную конфигурацию.
func DefaultConfig() Config {
	return Config{
		ServiceName:  constants.AppName,
		Version:      constants.Version,
		Environment:  "production",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

// Validate проверяет включённую конфигурацию.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch u, err := url.Parse(c.Endpoint); {
	case c.Endpoint == "":
		return ErrTracingEndpointRequired
	case err != nil || u.Host == "":
		return ErrTracingEndpointInvalidFormat
	case c.ServiceName == "":
		return ErrTracingServiceNameRequired
	case c.Timeout <= 0:
		return ErrTracingTimeoutInvalid
	case c.SamplingRate < 0 || c.SamplingRate > 1:
		return fmt.Errorf("%w, got: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

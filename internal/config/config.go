// Package config загружает настройки инфраструктуры загрузчика из переменных
// окружения PLUGRUN_* и необязательного YAML файла (PLUGRUN_CONFIG).
//
// Настройки плагинов сюда не входят: они приходят аргументами командной строки.
package config

import (
	"time"

	"github.com/Kargones/plugrun/internal/pkg/alerting"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/metrics"
	"github.com/Kargones/plugrun/internal/pkg/tracing"
)

// EnvConfigFile — переменная окружения с путём к YAML файлу конфигурации.
const EnvConfigFile = "PLUGRUN_CONFIG"

// Config — корневая конфигурация загрузчика.
type Config struct {
	// Logging — настройки вывода логов. Уровень отсюда действует до разбора --logLevel.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics — настройки Prometheus Pushgateway.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing — настройки OpenTelemetry.
	Tracing TracingConfig `yaml:"tracing"`

	// Alerting — настройки webhook алертов о фатальных сбоях.
	Alerting AlertingConfig `yaml:"alerting"`

	// DefaultRun — Runnable по умолчанию, если --run не передан.
	DefaultRun string `yaml:"defaultRun" env:"PLUGRUN_RUN"`
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"PLUGRUN_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"PLUGRUN_LOG_FORMAT" env-default:"text"`
	Output string `yaml:"output" env:"PLUGRUN_LOG_OUTPUT" env-default:"stderr"`

	// FilePath — путь к файлу логов (при output=file).
	FilePath string `yaml:"filePath" env:"PLUGRUN_LOG_FILE_PATH" env-default:"/var/log/plugrun.log"`

	// MaxSize в MB, MaxAge в днях.
	MaxSize    int `yaml:"maxSize" env:"PLUGRUN_LOG_MAX_SIZE" env-default:"100"`
	MaxBackups int `yaml:"maxBackups" env:"PLUGRUN_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int `yaml:"maxAge" env:"PLUGRUN_LOG_MAX_AGE" env-default:"7"`

	// Compress: cleanenv применяет env-default к нулевому значению, поэтому
	// compress: false из YAML перекрывается; отключить сжатие можно только через env.
	Compress bool `yaml:"compress" env:"PLUGRUN_LOG_COMPRESS" env-default:"true"`
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled" env:"PLUGRUN_METRICS_ENABLED" env-default:"false"`
	PushgatewayURL string        `yaml:"pushgatewayUrl" env:"PLUGRUN_METRICS_PUSHGATEWAY_URL"`
	JobName        string        `yaml:"jobName" env:"PLUGRUN_METRICS_JOB_NAME" env-default:"plugrun"`
	Timeout        time.Duration `yaml:"timeout" env:"PLUGRUN_METRICS_TIMEOUT" env-default:"10s"`
	InstanceLabel  string        `yaml:"instanceLabel" env:"PLUGRUN_METRICS_INSTANCE"`
}

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	Enabled      bool          `yaml:"enabled" env:"PLUGRUN_TRACING_ENABLED" env-default:"false"`
	Endpoint     string        `yaml:"endpoint" env:"PLUGRUN_TRACING_ENDPOINT"`
	ServiceName  string        `yaml:"serviceName" env:"PLUGRUN_TRACING_SERVICE_NAME" env-default:"plugrun"`
	Environment  string        `yaml:"environment" env:"PLUGRUN_TRACING_ENVIRONMENT" env-default:"production"`
	Insecure     bool          `yaml:"insecure" env:"PLUGRUN_TRACING_INSECURE" env-default:"false"`
	Timeout      time.Duration `yaml:"timeout" env:"PLUGRUN_TRACING_TIMEOUT" env-default:"5s"`
	SamplingRate float64       `yaml:"samplingRate" env:"PLUGRUN_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// AlertingConfig содержит настройки алертинга.
type AlertingConfig struct {
	Enabled bool `yaml:"enabled" env:"PLUGRUN_ALERTING_ENABLED" env-default:"false"`

	// WebhookURLs — адреса через запятую в env.
	WebhookURLs []string `yaml:"webhookUrls" env:"PLUGRUN_ALERTING_WEBHOOK_URLS" env-separator:","`

	WebhookHeaders map[string]string `yaml:"webhookHeaders"`
	Timeout        time.Duration     `yaml:"timeout" env:"PLUGRUN_ALERTING_TIMEOUT" env-default:"10s"`
	MaxRetries     int               `yaml:"maxRetries" env:"PLUGRUN_ALERTING_MAX_RETRIES" env-default:"3"`
}

// ToLogging конвертирует секцию в logging.Config.
func (c LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Format:     c.Format,
		Level:      c.Level,
		Output:     c.Output,
		FilePath:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// ToMetrics конвертирует секцию в metrics.Config.
func (c MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// ToTracing конвертирует секцию в tracing.Config; версия берётся из сборки.
func (c TracingConfig) ToTracing() tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = c.Enabled
	tc.Endpoint = c.Endpoint
	tc.ServiceName = c.ServiceName
	tc.Environment = c.Environment
	tc.Insecure = c.Insecure
	tc.Timeout = c.Timeout
	tc.SamplingRate = c.SamplingRate
	return tc
}

// ToAlerting конвертирует секцию в alerting.Config.
func (c AlertingConfig) ToAlerting() alerting.Config {
	return alerting.Config{
		Enabled: c.Enabled,
		Webhook: alerting.WebhookConfig{
			URLs:       c.WebhookURLs,
			Headers:    c.WebhookHeaders,
			Timeout:    c.Timeout,
			MaxRetries: c.MaxRetries,
		},
	}
}

// Default возвращает конфигурацию со значениями по умолчанию, совпадающими с env-default.
func Default() *Config {
	lc := logging.DefaultConfig()
	mc := metrics.DefaultConfig()
	tc := tracing.DefaultConfig()
	ac := alerting.DefaultConfig()
	return &Config{
		Logging: LoggingConfig{
			Level:      lc.Level,
			Format:     lc.Format,
			Output:     lc.Output,
			FilePath:   lc.FilePath,
			MaxSize:    lc.MaxSize,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAge,
			Compress:   lc.Compress,
		},
		Metrics: MetricsConfig{JobName: mc.JobName, Timeout: mc.Timeout},
		Tracing: TracingConfig{
			ServiceName:  tc.ServiceName,
			Environment:  tc.Environment,
			Timeout:      tc.Timeout,
			SamplingRate: tc.SamplingRate,
		},
		Alerting: AlertingConfig{
			Timeout:    ac.Webhook.Timeout,
			MaxRetries: ac.Webhook.MaxRetries,
		},
	}
}

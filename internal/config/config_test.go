package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kargones/plugrun/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugrun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_EnvDefaults проверяет что без файла и env используются значения по умолчанию.
func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("PLUGRUN_LOG_FORMAT", "json")
	t.Setenv("PLUGRUN_RUN", "example.com/x.Main")
	t.Setenv("PLUGRUN_METRICS_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "example.com/x.Main", cfg.DefaultRun)
	assert.Equal(t, 3*time.Second, cfg.Metrics.Timeout)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, `
defaultRun: github.com/Kargones/plugrun/internal/examples/greeting.Greeter
logging:
  level: debug
  format: json
metrics:
  enabled: true
  pushgatewayUrl: http://pushgateway:9091
  timeout: 2s
tracing:
  samplingRate: 0.25
`)
	t.Setenv("PLUGRUN_LOG_FORMAT", "text")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "env перекрывает файл")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Metrics.Timeout)
	assert.Equal(t, "plugrun", cfg.Metrics.JobName)
	assert.InDelta(t, 0.25, cfg.Tracing.SamplingRate, 1e-9)
	assert.Equal(t, "github.com/Kargones/plugrun/internal/examples/greeting.Greeter", cfg.DefaultRun)
}

func TestLoadFile_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown section", "plugins:\n  enabled: true\n"},
		{"retries negative", "alerting:\n  maxRetries: -1\n"},
		{"bad level", "logging:\n  level: verbose\n"},
		{"bad duration", "metrics:\n  timeout: soon\n"},
		{"rate out of range", "tracing:\n  samplingRate: 2\n"},
		{"wrong type", "logging:\n  maxSize: big\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.doc))
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrConfigValidate))
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConfigLoad))
}

// TestLoad_InvalidMetrics проверяет семантическую проверку после разбора.
func TestLoad_InvalidMetrics(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("PLUGRUN_METRICS_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConfigValidate))
	assert.Contains(t, err.Error(), "pushgateway URL is required")
}

func TestLoad_AlertingFromEnv(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("PLUGRUN_ALERTING_ENABLED", "true")
	t.Setenv("PLUGRUN_ALERTING_WEBHOOK_URLS", "https://a.example.com/hook,https://b.example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)
	ac := cfg.Alerting.ToAlerting()
	assert.True(t, ac.Enabled)
	assert.Equal(t, []string{"https://a.example.com/hook", "https://b.example.com/hook"}, ac.Webhook.URLs)
	assert.Equal(t, 10*time.Second, ac.Webhook.Timeout)
	assert.Equal(t, 3, ac.Webhook.MaxRetries)
}

func TestLoad_AlertingWithoutURLs(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("PLUGRUN_ALERTING_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConfigValidate))
	assert.Contains(t, err.Error(), "webhook url is required")
}

func TestValidateDocument_Empty(t *testing.T) {
	assert.NoError(t, ValidateDocument(nil))
	assert.NoError(t, ValidateDocument([]byte("# comments only\n")))
}

func TestConversions(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.ToLogging().Level)
	assert.Equal(t, "plugrun", cfg.Metrics.ToMetrics().JobName)
	tc := cfg.Tracing.ToTracing()
	assert.Equal(t, "plugrun", tc.ServiceName)
	assert.NotEmpty(t, tc.Version)
}

package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// runnableBuckets покрывают и короткие утилиты, и долгие фоновые задачи.
var runnableBuckets = []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 600}

// maxLabelLength — предел длины значения label в рунах.
const maxLabelLength = 128

// PrometheusCollector собирает метрики запуска в собственный registry:
//
//	plugrun_module_load_total{module,status}
//	plugrun_runnable_duration_seconds{runnable,status}
//	plugrun_runnable_success_total{runnable}
//	plugrun_runnable_error_total{runnable}
type PrometheusCollector struct {
	logger   logging.Logger
	registry *prometheus.Registry
	pusher   *push.Pusher
	timeout  time.Duration
	target   string // маскированный URL для логов
	job      string
	instance string

	moduleLoad      *prometheus.CounterVec
	runnableTime    *prometheus.HistogramVec
	runnableSuccess *prometheus.CounterVec
	runnableError   *prometheus.CounterVec
}

// NewPrometheusCollector создаёт PrometheusCollector. Label instance —
// InstanceLabel или hostname.
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &PrometheusCollector{
		logger:   logger,
		registry: prometheus.NewRegistry(),
		timeout:  config.Timeout,
		target:   urlutil.MaskURL(config.PushgatewayURL),
		job:      config.JobName,
		instance: instanceLabel(config, logger),

		moduleLoad: counterVec("module_load_total",
			"Total number of module load attempts by outcome", "module", "status"),
		runnableTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constants.AppName,
			Name:      "runnable_duration_seconds",
			Help:      "Duration of the entry point execution in seconds",
			Buckets:   runnableBuckets,
		}, []string{"runnable", "status"}),
		runnableSuccess: counterVec("runnable_success_total",
			"Total number of successful entry point executions", "runnable"),
		runnableError: counterVec("runnable_error_total",
			"Total number of failed entry point executions", "runnable"),
	}

	for _, m := range []prometheus.Collector{c.moduleLoad, c.runnableTime, c.runnableSuccess, c.runnableError} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	c.pusher = push.New(config.PushgatewayURL, config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)
	return c, nil
}

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Name:      name,
		Help:      help,
	}, labels)
}

func instanceLabel(config Config, logger logging.Logger) string {
	if config.InstanceLabel != "" {
		return config.InstanceLabel
	}
	hostname, err := os.Hostname()
	if err != nil {
		logger.Warn("cannot resolve hostname for metrics instance label, using 'unknown'",
			"error", err.Error())
		return "unknown"
	}
	return hostname
}

// sanitizeLabel заменяет управляющие символы на '_' и обрезает значение
// до maxLabelLength рун.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)
	if runes := []rune(clean); len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordModule реализует Collector.
func (c *PrometheusCollector) RecordModule(module, status string) {
	c.moduleLoad.WithLabelValues(sanitizeLabel(module), status).Inc()
}

// RecordRun реализует Collector.
func (c *PrometheusCollector) RecordRun(runnable string, duration time.Duration, success bool) {
	runnable = sanitizeLabel(runnable)
	status, counter := "success", c.runnableSuccess
	if !success {
		status, counter = "error", c.runnableError
	}
	c.runnableTime.WithLabelValues(runnable, status).Observe(duration.Seconds())
	counter.WithLabelValues(runnable).Inc()

	c.logger.Debug("metrics: runnable finished",
		"runnable", runnable,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// Push реализует Collector. Недоступный Pushgateway не влияет на запуск.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if ctx.Err() != nil {
		c.logger.Debug("metrics: push cancelled")
		return nil
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("failed to push metrics",
			"error", err.Error(),
			"url", c.target,
			"job", c.job,
		)
		return nil
	}
	c.logger.Debug("metrics pushed", "url", c.target, "job", c.job, "instance", c.instance)
	return nil
}

// Registry возвращает registry коллектора.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

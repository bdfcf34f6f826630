package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Kargones/plugrun/internal/constants"
	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/urlutil"
)

// HTTPClient — то, что нужно WebhookAlerter от http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Задержка между повторами удваивается от firstBackoff до lastBackoff.
const (
	firstBackoff = time.Second
	lastBackoff  = 4 * time.Second
)

// bodyLimit — сколько байт ответа читается для диагностики.
const bodyLimit = 1 << 10

// WebhookPayload — JSON, который получает webhook.
type WebhookPayload struct {
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	TraceID   string    `json:"trace_id"`
	Timestamp time.Time `json:"timestamp"`
	Runnable  string    `json:"runnable,omitempty"`
	Severity  string    `json:"severity"`
	Source    string    `json:"source"`
	Hostname  string    `json:"hostname,omitempty"`
}

// statusError — ответ webhook с кодом вне 2xx.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.body)
}

// permanent сообщает, что повтор не поможет: 4xx означает ошибку
// адреса или авторизации.
func permanent(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code >= 400 && se.code < 500
}

// WebhookAlerter отправляет алерт POST запросом на каждый настроенный URL.
type WebhookAlerter struct {
	config   WebhookConfig
	logger   logging.Logger
	client   HTTPClient
	hostname string
	backoff  time.Duration
}

// NewWebhookAlerter создаёт WebhookAlerter. Нулевой Timeout заменяется
// DefaultWebhookTimeout.
func NewWebhookAlerter(config WebhookConfig, logger logging.Logger) *WebhookAlerter {
	if config.Timeout == 0 {
		config.Timeout = DefaultWebhookTimeout
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &WebhookAlerter{
		config:   config,
		logger:   logger,
		client:   &http.Client{Timeout: config.Timeout},
		hostname: hostname,
		backoff:  firstBackoff,
	}
}

// SetHTTPClient подменяет HTTP клиент.
func (w *WebhookAlerter) SetHTTPClient(client HTTPClient) {
	w.client = client
}

// Send реализует Alerter. Результат доставки только логируется.
func (w *WebhookAlerter) Send(ctx context.Context, alert Alert) error {
	body, err := json.Marshal(w.payload(alert))
	if err != nil {
		w.logger.Error("cannot encode webhook alert", "error", err.Error())
		return nil
	}

	delivered := 0
	for i, target := range w.config.URLs {
		if ctx.Err() != nil {
			w.logger.Debug("webhook alert cancelled",
				"error_code", alert.ErrorCode,
				"remaining_urls", len(w.config.URLs)-i,
			)
			return nil
		}
		if err := w.deliver(ctx, target, body); err != nil {
			w.logger.Error("cannot send webhook alert",
				"channel", ChannelWebhook,
				"error", err.Error(),
				"url", urlutil.MaskURL(target),
				"error_code", alert.ErrorCode,
			)
			continue
		}
		delivered++
	}

	switch {
	case delivered > 0:
		w.logger.Debug("webhook alert sent",
			"error_code", alert.ErrorCode,
			"severity", alert.Severity.String(),
			"urls_success", delivered,
			"urls_total", len(w.config.URLs),
		)
	case len(w.config.URLs) > 0:
		w.logger.Warn("webhook alert was not delivered to any url",
			"error_code", alert.ErrorCode,
			"urls_total", len(w.config.URLs),
		)
	}
	return nil
}

func (w *WebhookAlerter) payload(alert Alert) WebhookPayload {
	return WebhookPayload{
		ErrorCode: alert.ErrorCode,
		Message:   alert.Message,
		TraceID:   alert.TraceID,
		Timestamp: alert.Timestamp,
		Runnable:  alert.Runnable,
		Severity:  alert.Severity.String(),
		Source:    constants.AppName,
		Hostname:  w.hostname,
	}
}

// deliver делает до MaxRetries+1 попыток отправить body на target.
func (w *WebhookAlerter) deliver(ctx context.Context, target string, body []byte) error {
	wait := w.backoff
	attempts := w.config.MaxRetries + 1

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = w.post(ctx, target, body); err == nil || permanent(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		w.logger.Debug("webhook retry",
			"attempt", attempt,
			"max_retries", w.config.MaxRetries,
			"error", err.Error(),
			"url", urlutil.MaskURL(target),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(2*wait, lastBackoff)
	}
	return fmt.Errorf("all %d attempts failed: %w", attempts, err)
}

func (w *WebhookAlerter) post(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)
	for k, v := range w.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, bodyLimit)) //nolint:errcheck // только для диагностики
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return &statusError{code: resp.StatusCode, body: string(text)}
}

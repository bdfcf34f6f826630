package alerting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plugrun/internal/pkg/logging"
	"github.com/Kargones/plugrun/internal/pkg/testutil"
)

// newTestWebhookAlerter создаёт WebhookAlerter без задержки между повторами.
func newTestWebhookAlerter(config WebhookConfig, logger logging.Logger) *WebhookAlerter {
	w := NewWebhookAlerter(config, logger)
	w.backoff = time.Millisecond
	return w
}

func testAlert() Alert {
	return Alert{
		ErrorCode: "GRAPH.OBTAIN_FAILED",
		Message:   "cannot create example.Main",
		TraceID:   "0123456789abcdef0123456789abcdef",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Runnable:  "example.Main",
		Severity:  SeverityCritical,
	}
}

func TestWebhookAlerter_Send(t *testing.T) {
	var got WebhookPayload
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rec := testutil.NewLogRecorder("debug")
	alerter := newTestWebhookAlerter(WebhookConfig{
		URLs:    []string{srv.URL},
		Headers: map[string]string{"X-Token": "secret"},
	}, rec.Logger)

	require.NoError(t, alerter.Send(context.Background(), testAlert()))

	assert.Equal(t, "GRAPH.OBTAIN_FAILED", got.ErrorCode)
	assert.Equal(t, "example.Main", got.Runnable)
	assert.Equal(t, "CRITICAL", got.Severity)
	assert.Equal(t, "plugrun", got.Source)
	assert.True(t, got.Timestamp.Equal(testAlert().Timestamp))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "plugrun/dev", headers.Get("User-Agent"))
	assert.Equal(t, "secret", headers.Get("X-Token"))
	assert.Len(t, rec.Find(t, "webhook alert sent"), 1)
}

func TestWebhookAlerter_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := newTestWebhookAlerter(WebhookConfig{URLs: []string{srv.URL}, MaxRetries: 3}, logging.NewNopLogger())

	require.NoError(t, alerter.Send(context.Background(), testAlert()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookAlerter_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	rec := testutil.NewLogRecorder("debug")
	alerter := newTestWebhookAlerter(WebhookConfig{URLs: []string{srv.URL + "/hook"}, MaxRetries: 3}, rec.Logger)

	assert.NoError(t, alerter.Send(context.Background(), testAlert()), "ошибка доставки не возвращается")
	assert.Equal(t, int32(1), calls.Load())

	errs := rec.Find(t, "cannot send webhook alert")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].String("error"), "HTTP 401")
	assert.Equal(t, ChannelWebhook, errs[0].String("channel"))
	assert.NotContains(t, errs[0].String("url"), "/hook", "путь URL маскируется")
	assert.Len(t, rec.Find(t, "webhook alert was not delivered to any url"), 1)
}

type failingClient struct{ calls int }

func (c *failingClient) Do(*http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("connection refused")
}

func TestWebhookAlerter_NetworkErrorsExhaustRetries(t *testing.T) {
	client := &failingClient{}
	alerter := newTestWebhookAlerter(WebhookConfig{URLs: []string{"http://alerts.invalid"}, MaxRetries: 2}, logging.NewNopLogger())
	alerter.SetHTTPClient(client)

	err := alerter.deliver(context.Background(), "http://alerts.invalid", []byte(`{}`))
	assert.ErrorContains(t, err, "all 3 attempts failed")
	assert.Equal(t, 3, client.calls)
}

func TestWebhookAlerter_CancelledContext(t *testing.T) {
	client := &failingClient{}
	alerter := newTestWebhookAlerter(WebhookConfig{URLs: []string{"http://a.invalid", "http://b.invalid"}}, logging.NewNopLogger())
	alerter.SetHTTPClient(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, alerter.Send(ctx, testAlert()))
	assert.Zero(t, client.calls)
}

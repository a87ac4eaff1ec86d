// Package notifiers provides concrete trajectory.Notifier implementations:
// an HTTP webhook and a WebSocket broadcast fan-out.
package notifiers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/daniacca/nastrand/internal/trajectory"
)

// WebhookNotifier delivers each StepEvent via HTTP POST to a fixed URL.
type WebhookNotifier struct {
	id      string
	url     string
	client  *http.Client
	headers map[string]string
}

// NewWebhookNotifier creates a webhook notifier posting to url.
func NewWebhookNotifier(id, url string) *WebhookNotifier {
	return &WebhookNotifier{
		id:      id,
		url:     url,
		client:  &http.Client{Timeout: 5 * time.Second},
		headers: make(map[string]string),
	}
}

// SetHeader sets a custom header included on every delivery request.
func (wn *WebhookNotifier) SetHeader(key, value string) {
	if wn.headers == nil {
		wn.headers = make(map[string]string)
	}
	wn.headers[key] = value
}

func (wn *WebhookNotifier) ID() string   { return wn.id }
func (wn *WebhookNotifier) Type() string { return "webhook" }

// Notify sends event to the webhook URL.
func (wn *WebhookNotifier) Notify(ctx context.Context, event trajectory.StepEvent) error {
	jsonData, err := event.JSON()
	if err != nil {
		return fmt.Errorf("notifiers: marshaling step event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wn.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("notifiers: creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range wn.headers {
		req.Header.Set(key, value)
	}

	resp, err := wn.client.Do(req)
	if err != nil {
		return fmt.Errorf("notifiers: sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifiers: webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op for webhook delivery.
func (wn *WebhookNotifier) Close() error { return nil }

// Package slack sends inquiry notifications to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"helios/internal/webhook"
)

// Notifier posts Block Kit messages to a Slack incoming webhook URL.
type Notifier struct {
	url    string
	client *http.Client
}

// NewNotifier creates a notifier for the given incoming webhook URL.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Notify formats and delivers an inquiry notification. Delivery failures
// are returned to the caller but must not fail the inquiry itself.
func (n *Notifier) Notify(ctx context.Context, p webhook.Payload) error {
	msg := BuildMessage(p, time.Now())

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

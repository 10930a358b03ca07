package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookNotifier POSTs admin notifications as JSON to a configured URL
// (typically a chat-bridge or messaging relay in front of the shop owner).
type WebhookNotifier struct {
	url    string
	client *http.Client
}

type webhookPayload struct {
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	Event   *Event `json:"event,omitempty"`
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) ReservationCreated(ctx context.Context, e Event) error {
	return n.post(ctx, webhookPayload{Type: "reservation_created", Event: &e})
}

func (n *WebhookNotifier) ReservationCancelled(ctx context.Context, e Event) error {
	return n.post(ctx, webhookPayload{Type: "reservation_cancelled", Event: &e})
}

func (n *WebhookNotifier) DailySummary(ctx context.Context, subject, body string) error {
	return n.post(ctx, webhookPayload{Type: "daily_summary", Subject: subject, Text: body})
}

func (n *WebhookNotifier) post(ctx context.Context, p webhookPayload) error {
	buf, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

package notify

import "context"

// Event describes a reservation change for the shop administrator.
type Event struct {
	PartyID     string `json:"party_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Date        string `json:"date"` // YYYY-MM-DD
	Slot        string `json:"slot"` // 12-hour label
	PartySize   int    `json:"party_size"`
	OccurredAt  string `json:"occurred_at"`
	DisplayDate string `json:"display_date,omitempty"`
}

// Notifier delivers administrator messages. Delivery is best-effort by
// contract: a failed notification must never unwind the reservation change
// that triggered it, so callers log returned errors and move on.
type Notifier interface {
	ReservationCreated(ctx context.Context, e Event) error
	ReservationCancelled(ctx context.Context, e Event) error
	DailySummary(ctx context.Context, subject, body string) error
}

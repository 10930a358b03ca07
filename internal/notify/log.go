package notify

import (
	"context"
	"log"
)

// LogNotifier writes admin notifications to the process log. It is the
// fallback channel when no webhook is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) ReservationCreated(_ context.Context, e Event) error {
	log.Printf("notify: new reservation: %s (%s) %s %s, party of %d", e.Name, e.Phone, e.Date, e.Slot, e.PartySize)
	return nil
}

func (n *LogNotifier) ReservationCancelled(_ context.Context, e Event) error {
	log.Printf("notify: reservation cancelled: %s (%s) %s %s, party of %d", e.Name, e.Phone, e.Date, e.Slot, e.PartySize)
	return nil
}

func (n *LogNotifier) DailySummary(_ context.Context, subject, body string) error {
	log.Printf("notify: %s\n%s", subject, body)
	return nil
}

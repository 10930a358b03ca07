package reservation

import (
	"context"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// Store is the authoritative reservation set. Implementations must keep
// every record ever created (cancelled and completed included) so that a
// party's history is the full sequence of its reservations.
//
// Status transitions happen in place via SetStatus; records are never
// rewritten otherwise. The service layer owns the check-then-act locking,
// stores only need individually consistent operations.
type Store interface {
	// Create appends a new reservation record.
	Create(ctx context.Context, r *Reservation) error

	// ActiveByParty returns the party's reservation with stored status
	// Active, or ErrNotFound.
	ActiveByParty(ctx context.Context, partyID string) (*Reservation, error)

	// ActiveOnDate returns all reservations with stored status Active on
	// the given date, in creation order.
	ActiveOnDate(ctx context.Context, date schedule.Date) ([]*Reservation, error)

	// SetStatus mutates a reservation's lifecycle status in place.
	SetStatus(ctx context.Context, id string, status Status) error

	// HistoryByParty returns every reservation the party has ever made, in
	// creation order. Sorting and lazy status promotion are the service's
	// concern.
	HistoryByParty(ctx context.Context, partyID string) ([]*Reservation, error)
}

package reservation

import (
	"net/http"
	"time"

	"github.com/mbbarber/barber-booking-backend/internal/pkg/apperror"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "no active reservation")
	ErrSlotTaken        = apperror.New(http.StatusConflict, "the requested slots are already reserved")
	ErrActiveExists     = apperror.New(http.StatusConflict, "party already has an active reservation")
	ErrCancelWindow     = apperror.New(http.StatusConflict, "reservation can no longer be cancelled")
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTime      = apperror.New(http.StatusBadRequest, "invalid time, expected a slot label like 08:00 AM")
	ErrInvalidPartySize = apperror.New(http.StatusBadRequest, "party size must be at least 1")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name must not be empty")
	ErrInvalidPhone     = apperror.New(http.StatusUnprocessableEntity, "invalid phone, expected 09XXXXXXXX, 2519XXXXXXXX or +2519XXXXXXXX")
	ErrSlotData         = apperror.New(http.StatusInternalServerError, "a stored reservation does not match the schedule")
)

// Status is the reservation lifecycle state. Active entries may move to
// Cancelled (explicit, within the notice window) or Completed (slot start
// has passed); Cancelled and Completed are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// statusRank orders history listings: active first, then completed, then
// cancelled.
func statusRank(s Status) int {
	switch s {
	case StatusActive:
		return 0
	case StatusCompleted:
		return 1
	case StatusCancelled:
		return 2
	default:
		return 3
	}
}

// Reservation is one party's booking. It doubles as its own history entry:
// the record is appended once at creation and only its Status mutates
// afterwards.
type Reservation struct {
	ID        string
	PartyID   string // opaque, stable identifier of the requester
	Name      string
	Phone     string
	Date      schedule.Date
	SlotLabel string // starting slot, stored as its 12-hour label
	PartySize int    // occupies PartySize consecutive slots from SlotLabel
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Start resolves the reservation's starting instant. Fails if the stored
// slot label is not parseable.
func (r *Reservation) Start() (time.Time, error) {
	c, err := schedule.ParseLabel(r.SlotLabel)
	if err != nil {
		return time.Time{}, err
	}
	return r.Date.At(c), nil
}

// EffectiveStatus computes the lifecycle state as of now: an Active
// reservation whose start has passed reads as Completed. The promotion is
// derived on read, never swept in the background. An unparseable slot label
// leaves the stored status untouched.
func (r *Reservation) EffectiveStatus(now time.Time) Status {
	if r.Status != StatusActive {
		return r.Status
	}
	start, err := r.Start()
	if err != nil {
		return r.Status
	}
	if start.Before(now) {
		return StatusCompleted
	}
	return StatusActive
}

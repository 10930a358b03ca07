package http

import (
	"time"

	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// SlotViewResponse is one slot of the selection UI.
type SlotViewResponse struct {
	Label string    `json:"label"` // e.g. "08:00 AM"
	Start time.Time `json:"start"`
	Free  bool      `json:"free"`
}

type SlotsResponse struct {
	Date        string             `json:"date"` // YYYY-MM-DD
	DisplayDate string             `json:"display_date"`
	Slots       []SlotViewResponse `json:"slots"`
}

func NewSlotsResponse(d schedule.Date, views []reservation.SlotView, today schedule.Date) SlotsResponse {
	slots := make([]SlotViewResponse, len(views))
	for i, v := range views {
		slots[i] = SlotViewResponse{Label: v.Slot.Label(), Start: v.Slot.Start, Free: v.Free}
	}
	return SlotsResponse{Date: d.ISO(), DisplayDate: d.Display(today), Slots: slots}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type SuggestionResponse struct {
	Date        string `json:"date"` // YYYY-MM-DD
	DisplayDate string `json:"display_date"`
	Label       string `json:"label"`
}

func NewSuggestionResponses(suggestions []reservation.Suggestion, today schedule.Date) []SuggestionResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = SuggestionResponse{
			Date:        s.Date.ISO(),
			DisplayDate: s.Date.Display(today),
			Label:       s.Slot.Label(),
		}
	}
	return out
}

type ReservationResponse struct {
	ID          string    `json:"id"`
	PartyID     string    `json:"party_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Date        string    `json:"date"` // YYYY-MM-DD
	DisplayDate string    `json:"display_date"`
	Time        string    `json:"time"` // slot label
	PartySize   int       `json:"party_size"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewReservationResponse(r *reservation.Reservation, today schedule.Date) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		PartyID:     r.PartyID,
		Name:        r.Name,
		Phone:       r.Phone,
		Date:        r.Date.ISO(),
		DisplayDate: r.Date.Display(today),
		Time:        r.SlotLabel,
		PartySize:   r.PartySize,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

// CreateReservationBody is the booking payload. Date and Time stay strings:
// the service owns the parsing policy.
type CreateReservationBody struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
}

// ConflictResponse is the 409 body for a taken span. It embeds fresh
// suggestions so the front-end can offer alternatives without another call.
type ConflictResponse struct {
	Error       string               `json:"error"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type EligibleResponse struct {
	Eligible bool `json:"eligible"`
}

package reservation

import (
	"fmt"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// spanFree reports whether a party of partySize can book the slot with the
// given label on the date the slots were enumerated for. A booking of N
// people occupies N consecutive slots starting at the booked one, with zero
// sharing, so the candidate span [i, i+N) must fit before closing and be
// disjoint from every active reservation's span.
//
// If a stored reservation's slot label cannot be located in the enumeration
// the check fails closed: it returns a data-integrity error instead of
// skipping the record, because skipping would silently allow a double
// booking.
func spanFree(slots []schedule.Slot, label string, partySize int, active []*Reservation) (bool, error) {
	candidate := -1
	for _, s := range slots {
		if s.Label() == label {
			candidate = s.Index
			break
		}
	}
	if candidate < 0 {
		return false, nil
	}

	neededEnd := candidate + partySize
	if neededEnd > len(slots) {
		// span would run past closing
		return false, nil
	}

	for _, other := range active {
		otherStart := -1
		for _, s := range slots {
			if s.Label() == other.SlotLabel {
				otherStart = s.Index
				break
			}
		}
		if otherStart < 0 {
			return false, fmt.Errorf("%w: reservation %s has slot %q outside the schedule for %s",
				ErrSlotData, other.ID, other.SlotLabel, other.Date.ISO())
		}

		otherEnd := otherStart + other.PartySize
		if !(neededEnd <= otherStart || candidate >= otherEnd) {
			return false, nil
		}
	}

	return true, nil
}

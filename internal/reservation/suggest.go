package reservation

import (
	"context"
	"log"

	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// Suggest implements the bounded nearest-availability search:
//
//  1. Resolve the requested date and time (lenient or strict per policy).
//  2. A requested time at or after closing is logically a request for the
//     next business day, so the anchor shifts forward one day.
//  3. Pass 1 scans the anchor date's slots chronologically, collecting
//     spans that fit the party, until limit is reached.
//  4. Pass 2 scans the following day, but only when pass 1 found nothing.
//  5. No third day: two empty passes mean "no availability".
//
// Bounding the search to two days keeps worst-case latency flat, and a shop
// with zero openings on two consecutive days is rare enough that a wider
// search would not help the caller.
func (s *service) Suggest(ctx context.Context, date, timeOfDay string, partySize, limit int) ([]Suggestion, error) {
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}

	anchor, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	requested, err := s.resolveTime(timeOfDay)
	if err != nil {
		return nil, err
	}

	if requested.Minutes() >= s.cal.Close().Minutes() {
		anchor = anchor.AddDays(1)
	}

	if limit <= 0 || limit > s.opts.SuggestLimit {
		limit = s.opts.SuggestLimit
	}

	results, err := s.scanDay(ctx, anchor, partySize, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		results, err = s.scanDay(ctx, anchor.AddDays(1), partySize, limit)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// scanDay collects up to limit free span starts on one date. A schedule
// integrity error fails the day closed: it yields no suggestions rather
// than recommending a possibly-taken span.
func (s *service) scanDay(ctx context.Context, d schedule.Date, partySize, limit int) ([]Suggestion, error) {
	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return nil, err
	}

	slots := s.cal.SlotsFor(d)
	var results []Suggestion
	for _, slot := range slots {
		free, err := spanFree(slots, slot.Label(), partySize, active)
		if err != nil {
			log.Printf("reservation: schedule integrity problem on %s: %v", d.ISO(), err)
			return nil, nil
		}
		if !free {
			continue
		}
		results = append(results, Suggestion{Date: d, Slot: slot})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

package reservation

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbbarber/barber-booking-backend/internal/notify"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// Options tunes the scheduling policies that spec'd behavior leaves to the
// deployment.
type Options struct {
	// SuggestLimit caps recommendation results. Requests may ask for fewer
	// but never more.
	SuggestLimit int
	// CancelNotice is how long before the slot start a cancellation is
	// still allowed. Strictly greater-than: exactly CancelNotice remaining
	// is too late.
	CancelNotice time.Duration
	// StrictParse surfaces validation errors for malformed dates/times
	// instead of the lenient fallback to today / opening time.
	StrictParse bool
	// AllowMultipleActive lets one party hold several active reservations.
	// Off by default: a second create is rejected explicitly.
	AllowMultipleActive bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// SlotView is one slot of a day with its bookability for a party of one.
type SlotView struct {
	Slot schedule.Slot
	Free bool
}

// Suggestion is one recommended alternative span start.
type Suggestion struct {
	Date schedule.Date
	Slot schedule.Slot
}

// CreateRequest carries the front-end's booking input. Date and Time are
// strings on purpose: parsing policy (strict or lenient) belongs here, not
// in the transport layer.
type CreateRequest struct {
	PartyID   string
	Name      string
	Phone     string
	Date      string // YYYY-MM-DD
	Time      string // slot label, e.g. "08:00 AM"
	PartySize int
}

type Service interface {
	// SlotsForDate returns the resolved date and its full slot sequence
	// with per-slot availability, for the slot-selection UI.
	SlotsForDate(ctx context.Context, date string) (schedule.Date, []SlotView, error)

	// CheckAvailability reports whether a party of the given size can book
	// the labeled slot on the date.
	CheckAvailability(ctx context.Context, date, slot string, partySize int) (bool, error)

	// Suggest searches the requested date, then the following day, for up
	// to limit free spans. See suggest.go for the search policy.
	Suggest(ctx context.Context, date, timeOfDay string, partySize, limit int) ([]Suggestion, error)

	// Create books a reservation, re-validating availability under the
	// store lock so two parties cannot win the same span.
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)

	// Cancel retires the party's active reservation and returns it, or
	// ErrNotFound if none exists, or ErrCancelWindow inside the notice
	// window.
	Cancel(ctx context.Context, partyID string) (*Reservation, error)

	// History lists every reservation the party has made, lazily promoting
	// past actives to completed, sorted by status rank then start
	// descending.
	History(ctx context.Context, partyID string) ([]*Reservation, error)

	// CancellationEligible reports whether the party has an active
	// reservation that can still be cancelled.
	CancellationEligible(ctx context.Context, partyID string) (bool, error)

	// ListActive returns the date's active reservations in slot order.
	// Admin surface; the date is always parsed strictly.
	ListActive(ctx context.Context, date string) ([]*Reservation, error)
}

type service struct {
	store    Store
	cal      schedule.Calendar
	notifier notify.Notifier
	opts     Options
	now      func() time.Time

	// mu serializes every check-then-act mutation of the reservation set.
	// Availability is re-validated while holding it, so two concurrent
	// creates for overlapping spans cannot both commit.
	mu sync.Mutex
}

func NewService(store Store, cal schedule.Calendar, notifier notify.Notifier, opts Options) Service {
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = 5
	}
	if opts.CancelNotice <= 0 {
		opts.CancelNotice = 2 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:    store,
		cal:      cal,
		notifier: notifier,
		opts:     opts,
		now:      now,
	}
}

// resolveDate applies the configured parsing policy: strict mode rejects
// malformed dates, lenient mode falls back to today to keep a conversational
// flow moving.
func (s *service) resolveDate(raw string) (schedule.Date, error) {
	d, err := schedule.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		if s.opts.StrictParse {
			return schedule.Date{}, ErrInvalidDate
		}
		return schedule.DateOf(s.now()), nil
	}
	return d, nil
}

// resolveTime is resolveDate's counterpart for clock input; the lenient
// fallback is the opening time.
func (s *service) resolveTime(raw string) (schedule.Clock, error) {
	c, err := schedule.ParseLabel(strings.TrimSpace(raw))
	if err != nil {
		if s.opts.StrictParse {
			return schedule.Clock{}, ErrInvalidTime
		}
		return s.cal.Open(), nil
	}
	return c, nil
}

func (s *service) SlotsForDate(ctx context.Context, date string) (schedule.Date, []SlotView, error) {
	d, err := s.resolveDate(date)
	if err != nil {
		return schedule.Date{}, nil, err
	}

	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return schedule.Date{}, nil, err
	}

	slots := s.cal.SlotsFor(d)
	views := make([]SlotView, len(slots))
	for i, slot := range slots {
		free, err := spanFree(slots, slot.Label(), 1, active)
		if err != nil {
			// Fail closed: a corrupt stored slot makes the whole day
			// read as unavailable rather than risking a double booking.
			log.Printf("reservation: schedule integrity problem on %s: %v", d.ISO(), err)
			for j := range slots {
				views[j] = SlotView{Slot: slots[j], Free: false}
			}
			return d, views, nil
		}
		views[i] = SlotView{Slot: slot, Free: free}
	}
	return d, views, nil
}

func (s *service) CheckAvailability(ctx context.Context, date, slot string, partySize int) (bool, error) {
	if partySize < 1 {
		return false, ErrInvalidPartySize
	}
	d, err := s.resolveDate(date)
	if err != nil {
		return false, err
	}

	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return false, err
	}

	free, err := spanFree(s.cal.SlotsFor(d), slot, partySize, active)
	if err != nil {
		log.Printf("reservation: schedule integrity problem on %s: %v", d.ISO(), err)
		return false, err
	}
	return free, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}
	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if _, err := schedule.ParseLabel(strings.TrimSpace(req.Time)); err != nil {
		return nil, ErrInvalidTime
	}
	d, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(req.Time)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	// One active reservation per party unless the policy says otherwise.
	// A stale active whose slot has passed is promoted first so it never
	// blocks a new booking.
	existing, err := s.store.ActiveByParty(ctx, req.PartyID)
	switch {
	case err == nil:
		if existing.EffectiveStatus(now) == StatusCompleted {
			if err := s.store.SetStatus(ctx, existing.ID, StatusCompleted); err != nil {
				return nil, err
			}
		} else if !s.opts.AllowMultipleActive {
			return nil, ErrActiveExists
		}
	case errors.Is(err, ErrNotFound):
		// no active reservation, proceed
	default:
		return nil, err
	}

	// Commit-time availability check, still under the lock.
	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return nil, err
	}
	free, err := spanFree(s.cal.SlotsFor(d), label, req.PartySize, active)
	if err != nil {
		log.Printf("reservation: schedule integrity problem on %s: %v", d.ISO(), err)
		return nil, err
	}
	if !free {
		return nil, ErrSlotTaken
	}

	r := &Reservation{
		ID:        uuid.NewString(),
		PartyID:   req.PartyID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     phone,
		Date:      d,
		SlotLabel: label,
		PartySize: req.PartySize,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.notifier.ReservationCreated(ctx, s.event(r)); err != nil {
		log.Printf("reservation: admin notification failed: %v", err)
	}
	return r, nil
}

func (s *service) Cancel(ctx context.Context, partyID string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.ActiveByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if existing.EffectiveStatus(now) == StatusCompleted {
		if err := s.store.SetStatus(ctx, existing.ID, StatusCompleted); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	start, err := existing.Start()
	if err != nil {
		log.Printf("reservation: cannot resolve start of %s: %v", existing.ID, err)
		return nil, ErrCancelWindow
	}
	if start.Sub(now) <= s.opts.CancelNotice {
		return nil, ErrCancelWindow
	}

	if err := s.store.SetStatus(ctx, existing.ID, StatusCancelled); err != nil {
		return nil, err
	}
	existing.Status = StatusCancelled

	if err := s.notifier.ReservationCancelled(ctx, s.event(existing)); err != nil {
		log.Printf("reservation: admin notification failed: %v", err)
	}
	return existing, nil
}

func (s *service) History(ctx context.Context, partyID string) ([]*Reservation, error) {
	entries, err := s.store.HistoryByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, e := range entries {
		if e.Status == StatusActive && e.EffectiveStatus(now) == StatusCompleted {
			if err := s.store.SetStatus(ctx, e.ID, StatusCompleted); err != nil {
				return nil, err
			}
			e.Status = StatusCompleted
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := statusRank(entries[i].Status), statusRank(entries[j].Status)
		if ri != rj {
			return ri < rj
		}
		// Most recent slot first within a rank; unresolvable starts sink
		// to the bottom.
		si, errI := entries[i].Start()
		sj, errJ := entries[j].Start()
		if errI != nil {
			si = time.Time{}
		}
		if errJ != nil {
			sj = time.Time{}
		}
		return si.After(sj)
	})
	return entries, nil
}

func (s *service) CancellationEligible(ctx context.Context, partyID string) (bool, error) {
	existing, err := s.store.ActiveByParty(ctx, partyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	now := s.now()
	if existing.EffectiveStatus(now) != StatusActive {
		return false, nil
	}
	start, err := existing.Start()
	if err != nil {
		return false, nil
	}
	return start.Sub(now) > s.opts.CancelNotice, nil
}

func (s *service) ListActive(ctx context.Context, date string) ([]*Reservation, error) {
	d, err := schedule.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, ErrInvalidDate
	}

	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(active, func(i, j int) bool {
		ci, errI := schedule.ParseLabel(active[i].SlotLabel)
		cj, errJ := schedule.ParseLabel(active[j].SlotLabel)
		if errI != nil || errJ != nil {
			return errJ != nil && errI == nil
		}
		return ci.Minutes() < cj.Minutes()
	})
	return active, nil
}

func (s *service) event(r *Reservation) notify.Event {
	return notify.Event{
		PartyID:     r.PartyID,
		Name:        r.Name,
		Phone:       r.Phone,
		Date:        r.Date.ISO(),
		Slot:        r.SlotLabel,
		PartySize:   r.PartySize,
		OccurredAt:  s.now().Format(schedule.DateFormat + " " + schedule.SlotLabelFormat),
		DisplayDate: r.Date.Display(schedule.DateOf(s.now())),
	}
}

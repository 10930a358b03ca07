package summary

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

// Line is one reserved entry of the daily report.
type Line struct {
	Slot      string `json:"slot"`
	PartySize int    `json:"party_size"`
	Name      string `json:"name"`
}

// Report is the two-section schedule overview the shop owner receives each
// morning: what is reserved and what is still open.
type Report struct {
	Date     schedule.Date `json:"-"`
	Reserved []Line        `json:"reserved"`
	Open     []string      `json:"open"`
}

// Render formats the report as the admin message body.
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily Schedule Summary (%s)\n\n", r.Date.ISO())

	b.WriteString("Reserved Slots:\n")
	if len(r.Reserved) == 0 {
		b.WriteString("None\n")
	}
	for _, l := range r.Reserved {
		fmt.Fprintf(&b, "%s — %dp — %s\n", l.Slot, l.PartySize, l.Name)
	}

	b.WriteString("\nOpen Slots:\n")
	if len(r.Open) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range r.Open {
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

// Service builds daily reports from the slot calendar and the reservation
// set. Read-only: it imposes nothing on the scheduling core beyond the
// store's read operations.
type Service struct {
	store reservation.Store
	cal   schedule.Calendar
}

func NewService(store reservation.Store, cal schedule.Calendar) *Service {
	return &Service{store: store, cal: cal}
}

// Report assembles the reserved and open sections for one date. Reserved
// entries come out in slot order. An unresolvable stored slot marks the
// whole day reserved-only, consistent with the scheduler's fail-closed
// availability rule.
func (s *Service) Report(ctx context.Context, d schedule.Date) (*Report, error) {
	active, err := s.store.ActiveOnDate(ctx, d)
	if err != nil {
		return nil, err
	}

	slots := s.cal.SlotsFor(d)
	occupied := make([]bool, len(slots))
	corrupt := false

	type placed struct {
		index int
		line  Line
	}
	var lines []placed
	for _, r := range active {
		start := -1
		if slot, ok := s.cal.Locate(d, r.SlotLabel); ok {
			start = slot.Index
		}
		if start < 0 {
			log.Printf("summary: reservation %s has slot %q outside the schedule for %s", r.ID, r.SlotLabel, d.ISO())
			corrupt = true
		} else {
			for i := start; i < start+r.PartySize && i < len(slots); i++ {
				occupied[i] = true
			}
		}
		lines = append(lines, placed{
			index: start,
			line:  Line{Slot: r.SlotLabel, PartySize: r.PartySize, Name: r.Name},
		})
	}

	report := &Report{Date: d}
	for pos := 0; pos < len(slots); pos++ {
		for _, p := range lines {
			if p.index == pos {
				report.Reserved = append(report.Reserved, p.line)
			}
		}
	}
	// Entries that could not be placed still belong in the reserved view.
	for _, p := range lines {
		if p.index < 0 {
			report.Reserved = append(report.Reserved, p.line)
		}
	}

	if !corrupt {
		for _, slot := range slots {
			if !occupied[slot.Index] {
				report.Open = append(report.Open, slot.Label())
			}
		}
	}
	return report, nil
}

// Runner fires the daily report at a fixed local time and hands it to the
// notifier. Delivery is best-effort; failures are logged and the next run
// is scheduled regardless.
type Runner struct {
	svc      *Service
	notifier Notifier
	at       schedule.Clock
	now      func() time.Time
}

// Notifier is the slice of the admin channel the runner needs.
type Notifier interface {
	DailySummary(ctx context.Context, subject, body string) error
}

func NewRunner(svc *Service, notifier Notifier, at schedule.Clock) *Runner {
	return &Runner{svc: svc, notifier: notifier, at: at, now: time.Now}
}

// Run blocks until ctx is done, firing once per day at the configured time.
func (r *Runner) Run(ctx context.Context) {
	for {
		now := r.now()
		next := r.nextRun(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.fire(ctx)
		}
	}
}

func (r *Runner) nextRun(now time.Time) time.Time {
	next := schedule.DateOf(now).At(r.at)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (r *Runner) fire(ctx context.Context) {
	d := schedule.DateOf(r.now())
	report, err := r.svc.Report(ctx, d)
	if err != nil {
		log.Printf("summary: building daily report failed: %v", err)
		return
	}

	subject := fmt.Sprintf("Daily Schedule Summary (%s)", d.ISO())
	if err := r.notifier.DailySummary(ctx, subject, report.Render()); err != nil {
		log.Printf("summary: delivering daily report failed: %v", err)
	}
}

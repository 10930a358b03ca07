package schedule

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("slot interval must be a positive number of minutes")
	ErrInvalidWindow   = errors.New("opening time must be before closing time")
)

// Slot is one fixed-width bookable unit within a day's operating window.
// Slots are derived from the date and the calendar constants, never stored.
type Slot struct {
	Index int       // position within the day, 0-based
	Start time.Time // slot start instant, local time
}

// Label renders the slot start as its stored/displayed 12-hour label.
func (s Slot) Label() string {
	return s.Start.Format(SlotLabelFormat)
}

// Calendar enumerates the bookable slots of any date from a fixed opening
// window and slot width. It holds no per-date state: the same date always
// yields the same sequence.
type Calendar struct {
	open     Clock
	close    Clock
	interval time.Duration
}

// NewCalendar validates the operating window and returns a Calendar.
func NewCalendar(open, close Clock, interval time.Duration) (Calendar, error) {
	if interval < time.Minute {
		return Calendar{}, ErrInvalidInterval
	}
	if open.Minutes() >= close.Minutes() {
		return Calendar{}, ErrInvalidWindow
	}
	return Calendar{open: open, close: close, interval: interval}, nil
}

// Open returns the opening time of the daily window.
func (c Calendar) Open() Clock { return c.open }

// Close returns the closing time of the daily window.
func (c Calendar) Close() Clock { return c.close }

// SlotCount returns the number of slots in any day's sequence.
func (c Calendar) SlotCount() int {
	window := time.Duration(c.close.Minutes()-c.open.Minutes()) * time.Minute
	return int(window/c.interval) + 1
}

// SlotsFor enumerates the date's slots in chronological order. The sequence
// starts at the opening time and includes every interval step up to and
// including the closing time.
func (c Calendar) SlotsFor(d Date) []Slot {
	start := d.At(c.open)
	end := d.At(c.close)

	slots := make([]Slot, 0, c.SlotCount())
	for cur := start; !cur.After(end); cur = cur.Add(c.interval) {
		slots = append(slots, Slot{Index: len(slots), Start: cur})
	}
	return slots
}

// Locate finds the slot on the given date whose label matches. The second
// return value reports whether the label belongs to the date's sequence.
func (c Calendar) Locate(d Date, label string) (Slot, bool) {
	for _, s := range c.SlotsFor(d) {
		if s.Label() == label {
			return s, true
		}
	}
	return Slot{}, false
}

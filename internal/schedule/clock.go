package schedule

import (
	"time"
)

// Clock is a time of day, minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ClockOf returns the clock time of the given instant.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock parses a 24-hour HH:MM string ("08:00", "20:00").
// This is the format used for configuration values.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockFormat, s)
	if err != nil {
		return Clock{}, err
	}
	return ClockOf(t), nil
}

// ParseLabel parses a 12-hour slot label ("08:00 AM", "07:40 PM").
// This is the format slots are stored and displayed in.
func ParseLabel(s string) (Clock, error) {
	t, err := time.Parse(SlotLabelFormat, s)
	if err != nil {
		return Clock{}, err
	}
	return ClockOf(t), nil
}

// Label renders the clock as a zero-padded 12-hour label with AM/PM suffix.
func (c Clock) Label() string {
	return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format(SlotLabelFormat)
}

// String renders the clock in 24-hour HH:MM form.
func (c Clock) String() string {
	return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format(clockFormat)
}

// Minutes returns the minutes elapsed since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

package schedule

import (
	"time"
)

// Wire and display formats shared across the service.
const (
	DateFormat        = "2006-01-02" // internal / API dates
	DisplayDateFormat = "02/01/2006" // user-facing dates
	SlotLabelFormat   = "03:04 PM"   // user-facing slot times
	clockFormat       = "15:04"      // config times
)

// Date is a calendar day with no clock or time zone component.
// It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the Date the given instant falls on, in local time.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an internal-format date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// At returns the instant on this date at the given clock time, in local time.
func (d Date) At(c Clock) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.Local)
}

// AddDays returns the date n days after d. Month and year rollover follow
// the calendar.
func (d Date) AddDays(n int) Date {
	return DateOf(d.At(Clock{}).AddDate(0, 0, n))
}

// ISO renders the date in the internal YYYY-MM-DD format.
func (d Date) ISO() string {
	return d.At(Clock{}).Format(DateFormat)
}

// Display renders the date for users: "Today" when it equals today,
// DD/MM/YYYY otherwise.
func (d Date) Display(today Date) string {
	if d == today {
		return "Today"
	}
	return d.At(Clock{}).Format(DisplayDateFormat)
}

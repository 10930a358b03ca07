package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCalendar(t *testing.T) Calendar {
	t.Helper()
	cal, err := NewCalendar(Clock{Hour: 8}, Clock{Hour: 20}, 40*time.Minute)
	require.NoError(t, err)
	return cal
}

func TestSlotsForReferenceWindow(t *testing.T) {
	cal := mustCalendar(t)
	date := Date{Year: 2026, Month: time.September, Day: 1}

	slots := cal.SlotsFor(date)
	require.Len(t, slots, 19)
	assert.Equal(t, 19, cal.SlotCount())

	assert.Equal(t, "08:00 AM", slots[0].Label())
	assert.Equal(t, "08:40 AM", slots[1].Label())
	assert.Equal(t, "09:20 AM", slots[2].Label())
	assert.Equal(t, "08:00 PM", slots[len(slots)-1].Label())

	for i, s := range slots {
		assert.Equal(t, i, s.Index)
	}
}

func TestSlotsForIsDeterministic(t *testing.T) {
	cal := mustCalendar(t)
	date := Date{Year: 2026, Month: time.September, Day: 1}

	first := cal.SlotsFor(date)
	second := cal.SlotsFor(date)
	require.Equal(t, first, second)
}

func TestNewCalendarRejectsBadWindows(t *testing.T) {
	_, err := NewCalendar(Clock{Hour: 8}, Clock{Hour: 20}, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewCalendar(Clock{Hour: 20}, Clock{Hour: 8}, 40*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewCalendar(Clock{Hour: 8}, Clock{Hour: 8}, 40*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestLocate(t *testing.T) {
	cal := mustCalendar(t)
	date := Date{Year: 2026, Month: time.September, Day: 1}

	slot, ok := cal.Locate(date, "09:20 AM")
	require.True(t, ok)
	assert.Equal(t, 2, slot.Index)

	_, ok = cal.Locate(date, "09:00 AM")
	assert.False(t, ok, "09:00 AM is not on the 40-minute grid")

	_, ok = cal.Locate(date, "garbage")
	assert.False(t, ok)
}

func TestParseDateAndFormats(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.September, Day: 1}, d)
	assert.Equal(t, "2026-09-01", d.ISO())
	assert.Equal(t, "01/09/2026", d.Display(Date{Year: 2026, Month: time.September, Day: 2}))
	assert.Equal(t, "Today", d.Display(d))

	_, err = ParseDate("01-09-2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestAddDaysRollsOver(t *testing.T) {
	d := Date{Year: 2026, Month: time.December, Day: 31}
	assert.Equal(t, Date{Year: 2027, Month: time.January, Day: 1}, d.AddDays(1))
}

func TestClockParsing(t *testing.T) {
	c, err := ParseClock("08:00")
	require.NoError(t, err)
	assert.Equal(t, "08:00 AM", c.Label())
	assert.Equal(t, 480, c.Minutes())

	c, err = ParseLabel("07:40 PM")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 19, Minute: 40}, c)
	assert.Equal(t, "19:40", c.String())

	_, err = ParseLabel("19:40")
	assert.Error(t, err)
}

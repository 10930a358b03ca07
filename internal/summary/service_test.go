package summary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

var reportDate = schedule.Date{Year: 2026, Month: time.September, Day: 1}

func newTestService(t *testing.T) (*Service, *reservation.MemoryStore) {
	t.Helper()
	cal, err := schedule.NewCalendar(
		schedule.Clock{Hour: 8},
		schedule.Clock{Hour: 20},
		40*time.Minute,
	)
	require.NoError(t, err)
	store := reservation.NewMemoryStore()
	return NewService(store, cal), store
}

func seed(t *testing.T, store *reservation.MemoryStore, id, name, label string, partySize int) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &reservation.Reservation{
		ID:        id,
		PartyID:   "party-" + id,
		Name:      name,
		Phone:     "0912345678",
		Date:      reportDate,
		SlotLabel: label,
		PartySize: partySize,
		Status:    reservation.StatusActive,
	}))
}

func TestReportEmptyDay(t *testing.T) {
	svc, _ := newTestService(t)

	report, err := svc.Report(context.Background(), reportDate)
	require.NoError(t, err)
	assert.Empty(t, report.Reserved)
	assert.Len(t, report.Open, 19)
	assert.Equal(t, "08:00 AM", report.Open[0])
	assert.Equal(t, "08:00 PM", report.Open[18])
}

func TestReportMarksSpansAndSorts(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, "r2", "Beka", "10:00 AM", 1)
	seed(t, store, "r1", "Abel", "08:00 AM", 2)

	report, err := svc.Report(context.Background(), reportDate)
	require.NoError(t, err)

	require.Len(t, report.Reserved, 2)
	// Slot order, regardless of creation order.
	assert.Equal(t, Line{Slot: "08:00 AM", PartySize: 2, Name: "Abel"}, report.Reserved[0])
	assert.Equal(t, Line{Slot: "10:00 AM", PartySize: 1, Name: "Beka"}, report.Reserved[1])

	// 08:00, 08:40 (span of two) and 10:00 are taken; 16 slots stay open.
	assert.Len(t, report.Open, 16)
	assert.NotContains(t, report.Open, "08:00 AM")
	assert.NotContains(t, report.Open, "08:40 AM")
	assert.NotContains(t, report.Open, "10:00 AM")
	assert.Contains(t, report.Open, "09:20 AM")
}

func TestReportCorruptSlotSuppressesOpenSection(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, "r1", "Abel", "08:00 AM", 1)
	seed(t, store, "bad", "Ghost", "25:99", 1)

	report, err := svc.Report(context.Background(), reportDate)
	require.NoError(t, err)

	// The unplaceable entry is still listed, after the placed ones.
	require.Len(t, report.Reserved, 2)
	assert.Equal(t, "08:00 AM", report.Reserved[0].Slot)
	assert.Equal(t, "25:99", report.Reserved[1].Slot)

	// No open slots are advertised while the day's data is suspect.
	assert.Empty(t, report.Open)
}

func TestRender(t *testing.T) {
	report := &Report{
		Date: reportDate,
		Reserved: []Line{
			{Slot: "08:00 AM", PartySize: 2, Name: "Abel"},
		},
		Open: []string{"09:20 AM", "10:00 AM"},
	}

	text := report.Render()
	assert.Contains(t, text, "Daily Schedule Summary (2026-09-01)")
	assert.Contains(t, text, "Reserved Slots:\n08:00 AM — 2p — Abel")
	assert.Contains(t, text, "Open Slots:\n09:20 AM\n10:00 AM")
}

func TestRenderEmptySections(t *testing.T) {
	report := &Report{Date: reportDate}

	text := report.Render()
	assert.Contains(t, text, "Reserved Slots:\nNone")
	assert.Contains(t, text, "Open Slots:\nNone")
}

package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbbarber/barber-booking-backend/internal/notify"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
)

type noopNotifier struct{}

func (noopNotifier) ReservationCreated(context.Context, notify.Event) error   { return nil }
func (noopNotifier) ReservationCancelled(context.Context, notify.Event) error { return nil }
func (noopNotifier) DailySummary(context.Context, string, string) error       { return nil }

// testNow is 06:00 on the reference date, two hours before opening.
func testNow() time.Time {
	return time.Date(2026, time.September, 1, 6, 0, 0, 0, time.Local)
}

func newTestService(t *testing.T, opts Options) (Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	if opts.Now == nil {
		opts.Now = testNow
	}
	return NewService(store, testCalendar(t), noopNotifier{}, opts), store
}

func validRequest() CreateRequest {
	return CreateRequest{
		PartyID:   "party-1",
		Name:      "Abel",
		Phone:     "0912345678",
		Date:      testDate.ISO(),
		Time:      "10:00 AM",
		PartySize: 1,
	}
}

func TestCreateAndCancelRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, "10:00 AM", created.SlotLabel)
	assert.Equal(t, testDate, created.Date)

	eligible, err := svc.CancellationEligible(ctx, "party-1")
	require.NoError(t, err)
	assert.True(t, eligible)

	cancelled, err := svc.Cancel(ctx, "party-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, cancelled.ID)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Nothing left to cancel.
	_, err = svc.Cancel(ctx, "party-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"empty name", func(r *CreateRequest) { r.Name = "  " }, ErrEmptyName},
		{"zero party size", func(r *CreateRequest) { r.PartySize = 0 }, ErrInvalidPartySize},
		{"bad phone", func(r *CreateRequest) { r.Phone = "12345" }, ErrInvalidPhone},
		{"off-format time", func(r *CreateRequest) { r.Time = "10:00" }, ErrInvalidTime},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreatePhoneNormalization(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	req := validRequest()
	req.Phone = "09 1234-5678"
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "0912345678", created.Phone)
}

func TestCreateRejectsOverlappingSpan(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	first := validRequest()
	first.Time = "08:00 AM"
	first.PartySize = 2
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validRequest()
	second.PartyID = "party-2"
	second.Phone = "0987654321"
	second.Time = "08:40 AM"
	_, err = svc.Create(ctx, second)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The first slot past the span is fine.
	second.Time = "09:20 AM"
	_, err = svc.Create(ctx, second)
	assert.NoError(t, err)
}

func TestCreateSingleActivePerParty(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Time = "02:00 PM"
	_, err = svc.Create(ctx, again)
	assert.ErrorIs(t, err, ErrActiveExists)
}

func TestCreateAllowMultipleActive(t *testing.T) {
	svc, _ := newTestService(t, Options{AllowMultipleActive: true})
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Time = "02:00 PM"
	_, err = svc.Create(ctx, again)
	assert.NoError(t, err)
}

func TestCreateAfterStaleActivePromotion(t *testing.T) {
	// The party's previous reservation started in the past; booking again
	// promotes it to completed instead of rejecting.
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	svc, store := newTestService(t, Options{Now: func() time.Time { return now }})
	ctx := context.Background()

	stale := activeAt("08:00 AM", 1)
	stale.PartyID = "party-1"
	require.NoError(t, store.Create(ctx, stale))

	req := validRequest()
	req.Time = "04:00 PM"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	history, err := svc.History(ctx, "party-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, StatusActive, history[0].Status)
	assert.Equal(t, StatusCompleted, history[1].Status)
}

func TestCancelNoticeWindow(t *testing.T) {
	// Now is 06:00; a slot at 08:00 AM leaves exactly two hours, which is
	// already too late under the default notice.
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	req := validRequest()
	req.Time = "08:00 AM"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	eligible, err := svc.CancellationEligible(ctx, "party-1")
	require.NoError(t, err)
	assert.False(t, eligible)

	_, err = svc.Cancel(ctx, "party-1")
	assert.ErrorIs(t, err, ErrCancelWindow)
}

func TestCancelJustOutsideNotice(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	// 08:40 AM leaves 2h40m of notice.
	req := validRequest()
	req.Time = "08:40 AM"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "party-1")
	assert.NoError(t, err)
}

func TestCancellationEligibleWithoutReservation(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	eligible, err := svc.CancellationEligible(context.Background(), "party-1")
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestHistoryOrderAndLazyCompletion(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
	svc, store := newTestService(t, Options{Now: func() time.Time { return now }})
	ctx := context.Background()

	past := activeAt("08:00 AM", 1)
	past.PartyID = "party-1"
	require.NoError(t, store.Create(ctx, past))

	cancelled := activeAt("09:20 AM", 1)
	cancelled.ID = "res-cancelled"
	cancelled.PartyID = "party-1"
	cancelled.Status = StatusCancelled
	require.NoError(t, store.Create(ctx, cancelled))

	upcoming := activeAt("04:00 PM", 1)
	upcoming.ID = "res-upcoming"
	upcoming.PartyID = "party-1"
	require.NoError(t, store.Create(ctx, upcoming))

	history, err := svc.History(ctx, "party-1")
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Active first, then the lazily completed entry, then cancelled.
	assert.Equal(t, StatusActive, history[0].Status)
	assert.Equal(t, "res-upcoming", history[0].ID)
	assert.Equal(t, StatusCompleted, history[1].Status)
	assert.Equal(t, StatusCancelled, history[2].Status)

	// The promotion is persisted, not just reported.
	stored, err := store.HistoryByParty(ctx, "party-1")
	require.NoError(t, err)
	for _, r := range stored {
		if r.ID == past.ID {
			assert.Equal(t, StatusCompleted, r.Status)
		}
	}
}

func TestSlotsForDateMarksOccupiedSpans(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	req := validRequest()
	req.Time = "08:00 AM"
	req.PartySize = 2
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	d, views, err := svc.SlotsForDate(ctx, testDate.ISO())
	require.NoError(t, err)
	assert.Equal(t, testDate, d)
	require.Len(t, views, 19)
	assert.False(t, views[0].Free)
	assert.False(t, views[1].Free)
	assert.True(t, views[2].Free)
}

func TestSlotsForDateFailsClosedOnCorruptData(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	corrupt := activeAt("25:99", 1)
	require.NoError(t, store.Create(ctx, corrupt))

	_, views, err := svc.SlotsForDate(ctx, testDate.ISO())
	require.NoError(t, err)
	require.Len(t, views, 19)
	for _, v := range views {
		assert.False(t, v.Free, v.Slot.Label())
	}
}

func TestListActiveSortsBySlot(t *testing.T) {
	svc, store := newTestService(t, Options{})
	ctx := context.Background()

	late := activeAt("02:00 PM", 1)
	late.PartyID = "party-late"
	require.NoError(t, store.Create(ctx, late))

	early := activeAt("08:40 AM", 1)
	early.PartyID = "party-early"
	require.NoError(t, store.Create(ctx, early))

	active, err := svc.ListActive(ctx, testDate.ISO())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "08:40 AM", active[0].SlotLabel)
	assert.Equal(t, "02:00 PM", active[1].SlotLabel)

	_, err = svc.ListActive(ctx, "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestConcurrentCreatesSameSpan(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.PartyID = "party-" + string(rune('a'+i))
			errs[i] = func() error {
				_, err := svc.Create(ctx, req)
				return err
			}()
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent create may win the span")
}

func TestLenientDateFallsBackToToday(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	d, _, err := svc.SlotsForDate(context.Background(), "next tuesday")
	require.NoError(t, err)
	assert.Equal(t, schedule.DateOf(testNow()), d)
}

func TestStrictParseSurfacesErrors(t *testing.T) {
	svc, _ := newTestService(t, Options{StrictParse: true})
	ctx := context.Background()

	_, _, err := svc.SlotsForDate(ctx, "next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)

	req := validRequest()
	req.Date = "31/12/2026"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Suggest(ctx, testDate.ISO(), "sometime", 1, 5)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/queue"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

func testPitch(id uint64) model.Pitch {
	return model.Pitch{
		ID:         id,
		OwnerID:    7,
		Name:       "Central Arena",
		Location:   "12 Nguyen Hue",
		Price:      "300.000đ/giờ",
		PriceValue: 300000,
		Type:       model.PitchType7v7,
		Status:     model.PitchActive,
		Slots:      append([]string(nil), model.SlotCatalog...),
	}
}

func newTestEngine(t *testing.T) (*Engine, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	store.PutPitch(testPitch(1))
	eng := New(store.Pitches(), store.Bookings(), nil, zerolog.Nop())
	return eng, store
}

func validParams() CreateParams {
	return CreateParams{
		PitchID:  1,
		Date:     "2026-09-01",
		TimeSlot: "18:30 - 20:00",
		Name:     "Nguyen Van A",
		Phone:    "0912345678",
	}
}

func TestCreateStartsPending(t *testing.T) {
	eng, _ := newTestEngine(t)

	b, err := eng.Create(context.Background(), validParams())
	require.NoError(t, err)

	assert.Equal(t, model.BookingPending, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "Central Arena", b.PitchName)
	assert.Equal(t, int64(300000), b.Price)
	assert.Equal(t, "01/09/2026", b.DateLabel)
	assert.Nil(t, b.ConfirmedAt)
	assert.Nil(t, b.PaymentMethod)
}

func TestCreateRejectsTakenSlot(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	_, err = eng.Create(ctx, validParams())
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	// Same slot on another day is unrelated.
	p := validParams()
	p.Date = "2026-09-02"
	_, err = eng.Create(ctx, p)
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"empty name", func(p *CreateParams) { p.Name = "  " }},
		{"bad phone", func(p *CreateParams) { p.Phone = "12345" }},
		{"bad date", func(p *CreateParams) { p.Date = "01-09-2026" }},
		{"unknown slot", func(p *CreateParams) { p.TimeSlot = "03:00 - 04:30" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			_, err := eng.Create(ctx, p)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	p := validParams()
	p.PitchID = 99
	_, err := eng.Create(ctx, p)
	assert.ErrorIs(t, err, repository.ErrPitchNotFound)
}

func TestCreateRejectsInactivePitch(t *testing.T) {
	eng, store := newTestEngine(t)
	locked := testPitch(2)
	locked.Status = model.PitchLocked
	store.PutPitch(locked)

	p := validParams()
	p.PitchID = 2
	_, err := eng.Create(context.Background(), p)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Create(ctx, validParams())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		default:
			require.ErrorIs(t, err, repository.ErrSlotTaken)
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelledSlotBecomesFree(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	_, err = eng.Transition(ctx, b.ID, model.BookingCancelled)
	require.NoError(t, err)

	booked, err := eng.Availability(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.NotContains(t, booked, "18:30 - 20:00")

	_, err = eng.Create(ctx, validParams())
	assert.NoError(t, err)
}

func TestTransitionLifecycle(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	confirmed, err := eng.Transition(ctx, b.ID, model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	// Double confirm is rejected instead of silently succeeding.
	_, err = eng.Transition(ctx, b.ID, model.BookingConfirmed)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	cancelled, err := eng.Transition(ctx, b.ID, model.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)

	// Cancelled is terminal.
	_, err = eng.Transition(ctx, b.ID, model.BookingConfirmed)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
	_, err = eng.Transition(ctx, b.ID, model.BookingCancelled)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
}

func TestTransitionValidation(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	_, err = eng.Transition(ctx, b.ID, "archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = eng.Transition(ctx, 999, model.BookingConfirmed)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestBulkTransitionIsPerID(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	p1 := validParams()
	b1, err := eng.Create(ctx, p1)
	require.NoError(t, err)

	p2 := validParams()
	p2.TimeSlot = "06:00 - 07:30"
	b2, err := eng.Create(ctx, p2)
	require.NoError(t, err)

	_, err = eng.Transition(ctx, b2.ID, model.BookingCancelled)
	require.NoError(t, err)

	results := eng.BulkTransition(ctx, []uint64{b1.ID, b2.ID, 999}, model.BookingConfirmed)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Message)
	assert.False(t, results[2].OK)
}

func TestConfirmMockPayment(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	paid, err := eng.ConfirmMockPayment(ctx, b.ID, "momo")
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, paid.Status)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "momo", *paid.PaymentMethod)
	assert.NotNil(t, paid.ConfirmedAt)

	// Paying twice, or paying a cancelled booking, must fail.
	_, err = eng.ConfirmMockPayment(ctx, b.ID, "momo")
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	_, err = eng.ConfirmMockPayment(ctx, b.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmPublishesEvent(t *testing.T) {
	store := NewMemoryStore()
	store.PutPitch(testPitch(1))

	var mu sync.Mutex
	var events []queue.BookingConfirmedEvent
	publish := func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
		return nil
	}
	eng := New(store.Pitches(), store.Bookings(), publish, zerolog.Nop())
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)
	assert.Empty(t, events, "creation must not publish")

	_, err = eng.ConfirmMockPayment(ctx, b.ID, "cash")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, b.ID, events[0].BookingID)
	assert.Equal(t, b.Reference, events[0].Reference)
	assert.Equal(t, "cash", events[0].PaymentMethod)
}

func TestBookingPriceSurvivesPitchRepricing(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)
	require.Equal(t, int64(300000), b.Price)

	repriced := testPitch(1)
	repriced.PriceValue = 500000
	store.PutPitch(repriced)

	got, err := eng.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), got.Price)

	// New bookings pick up the new price.
	p := validParams()
	p.TimeSlot = "20:00 - 21:30"
	b2, err := eng.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), b2.Price)
}

func TestAvailabilityListsHeldSlots(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.Availability(ctx, 1, "not-a-date")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = eng.Availability(ctx, 42, "2026-09-01")
	assert.ErrorIs(t, err, repository.ErrPitchNotFound)

	b, err := eng.Create(ctx, validParams())
	require.NoError(t, err)

	booked, err := eng.Availability(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30 - 20:00"}, booked)

	_, err = eng.ConfirmMockPayment(ctx, b.ID, "cash")
	require.NoError(t, err)

	// Confirmed bookings keep holding their slot.
	booked, err = eng.Availability(ctx, 1, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30 - 20:00"}, booked)
}

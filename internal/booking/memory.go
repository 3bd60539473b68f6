package booking

import (
	"context"
	"sync"
	"time"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// MemoryStore is a map-backed stand-in for the SQL repositories.  It backs
// the engine in tests and local development where no MySQL instance is
// available; semantics mirror the real repositories, including the
// compare-and-set behavior of SetStatus.  Pitches() and Bookings() return
// the two store views the engine consumes.
type MemoryStore struct {
	mu       sync.RWMutex
	pitches  map[uint64]model.Pitch
	bookings map[uint64]model.Booking
	nextID   uint64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pitches:  map[uint64]model.Pitch{},
		bookings: map[uint64]model.Booking{},
		nextID:   1,
	}
}

// Pitches returns the PitchStore view of the shared state.
func (m *MemoryStore) Pitches() PitchStore { return memPitches{m} }

// Bookings returns the BookingStore view of the shared state.
func (m *MemoryStore) Bookings() BookingStore { return memBookings{m} }

type memPitches struct{ m *MemoryStore }
type memBookings struct{ m *MemoryStore }

// PutPitch inserts or replaces a pitch.
func (m *MemoryStore) PutPitch(p model.Pitch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pitches[p.ID] = p
}

// GetByID implements PitchStore.
func (v memPitches) GetByID(ctx context.Context, id uint64) (model.Pitch, error) {
	m := v.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pitches[id]
	if !ok {
		return model.Pitch{}, repository.ErrPitchNotFound
	}
	return p, nil
}

// OccupiedSlots implements BookingStore.
func (v memBookings) OccupiedSlots(ctx context.Context, pitchID uint64, date string) ([]string, error) {
	m := v.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	slots := make([]string, 0)
	for _, b := range m.bookings {
		if b.PitchID == pitchID && b.Date == date &&
			(b.Status == model.BookingPending || b.Status == model.BookingConfirmed) {
			slots = append(slots, b.TimeSlot)
		}
	}
	return slots, nil
}

// Create implements BookingStore.
func (v memBookings) Create(ctx context.Context, b *model.Booking) error {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = now
	b.UpdatedAt = now
	m.bookings[b.ID] = *b
	return nil
}

// GetBooking returns a booking by id (test helper).
func (m *MemoryStore) GetBooking(id uint64) (model.Booking, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	return b, ok
}

// GetByID implements BookingStore.
func (v memBookings) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	m := v.m
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

// SetStatus implements BookingStore with compare-and-set semantics.
func (v memBookings) SetStatus(ctx context.Context, id uint64, from, to string, confirmedAt *time.Time, paymentMethod *string) (bool, error) {
	m := v.m
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if confirmedAt != nil {
		b.ConfirmedAt = confirmedAt
	}
	if paymentMethod != nil {
		b.PaymentMethod = paymentMethod
	}
	b.UpdatedAt = time.Now().UTC()
	m.bookings[id] = b
	return true, nil
}

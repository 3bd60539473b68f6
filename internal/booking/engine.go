// Package booking implements the availability and booking-lifecycle engine.
// It owns the one substantive domain rule of the system: for a given pitch
// and date, at most one booking with status pending or confirmed may occupy
// a given time slot.  The engine is stateless between calls apart from the
// per-(pitch,date) mutexes that serialize the check-then-insert sequence.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/metrics"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/queue"
	"github.com/soccerzone/pitch-booking/internal/repository"
	"github.com/soccerzone/pitch-booking/internal/utils"
)

// ErrValidation marks malformed input: bad phone, missing name, unparsable
// date or a slot outside the pitch's catalog.  Concrete causes wrap this
// sentinel so handlers can map the whole family to HTTP 400 while keeping
// a human-readable message.
var ErrValidation = errors.New("validation failed")

// PitchStore is the slice of the pitch repository the engine needs.
type PitchStore interface {
	GetByID(ctx context.Context, id uint64) (model.Pitch, error)
}

// BookingStore is the slice of the booking repository the engine needs.
// SetStatus must be compare-and-set on the current status so concurrent
// transitions cannot both win.
type BookingStore interface {
	OccupiedSlots(ctx context.Context, pitchID uint64, date string) ([]string, error)
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	SetStatus(ctx context.Context, id uint64, from, to string, confirmedAt *time.Time, paymentMethod *string) (bool, error)
}

// Publisher delivers a booking-confirmed event to the message broker.
// Publishing is best-effort: the engine logs failures and carries on.
type Publisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// Engine coordinates availability queries, booking creation and status
// transitions over the underlying stores.
type Engine struct {
	pitches  PitchStore
	bookings BookingStore
	publish  Publisher
	log      zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New constructs an Engine.  publish may be nil when no broker is
// configured.
func New(pitches PitchStore, bookings BookingStore, publish Publisher, log zerolog.Logger) *Engine {
	if pitches == nil || bookings == nil {
		panic("nil store passed to booking.New")
	}
	return &Engine{
		pitches:  pitches,
		bookings: bookings,
		publish:  publish,
		log:      log,
		locks:    map[string]*sync.Mutex{},
	}
}

// slotLock returns the mutex serializing writers for one (pitch, date)
// pair.  Entries are never removed; the map is bounded by the number of
// distinct pitch/day combinations seen since startup.
func (e *Engine) slotLock(pitchID uint64, date string) *sync.Mutex {
	key := fmt.Sprintf("%d|%s", pitchID, date)
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// normalizeDate parses a YYYY-MM-DD day and returns it re-formatted plus
// its localized display label.
func normalizeDate(date string) (string, string, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return t.Format(model.DateLayout), t.Format(model.DateLabelLayout), nil
}

// Availability returns the slot labels already occupied for a pitch on a
// calendar day.  It is a pure read.  Labels outside the pitch's configured
// catalog are filtered out even if stale booking rows reference them.
func (e *Engine) Availability(ctx context.Context, pitchID uint64, date string) ([]string, error) {
	day, _, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	pitch, err := e.pitches.GetByID(ctx, pitchID)
	if err != nil {
		return nil, err
	}
	occupied, err := e.bookings.OccupiedSlots(ctx, pitch.ID, day)
	if err != nil {
		return nil, err
	}
	booked := make([]string, 0, len(occupied))
	for _, s := range occupied {
		if pitch.HasSlot(s) {
			booked = append(booked, s)
		}
	}
	return booked, nil
}

// CreateParams carries the customer input for a new booking.
type CreateParams struct {
	PitchID    uint64
	Date       string
	TimeSlot   string
	Name       string
	Phone      string
	CustomerID *uint64
}

// Create validates the request, verifies the slot is free and inserts a
// pending booking.  The conflict check and the insert run under the
// per-(pitch,date) lock so two simultaneous requests for the same slot can
// never both succeed.  The pitch name and price are copied onto the
// booking at this point and never updated afterwards.
func (e *Engine) Create(ctx context.Context, p CreateParams) (model.Booking, error) {
	var zero model.Booking
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return zero, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if !utils.ValidMobile(p.Phone) {
		return zero, fmt.Errorf("%w: phone must be a valid mobile number", ErrValidation)
	}
	day, label, err := normalizeDate(p.Date)
	if err != nil {
		return zero, err
	}
	pitch, err := e.pitches.GetByID(ctx, p.PitchID)
	if err != nil {
		return zero, err
	}
	if pitch.Status != model.PitchActive {
		return zero, fmt.Errorf("%w: pitch is not open for booking", ErrValidation)
	}
	if !pitch.HasSlot(p.TimeSlot) {
		return zero, fmt.Errorf("%w: unknown time slot for this pitch", ErrValidation)
	}

	lock := e.slotLock(pitch.ID, day)
	lock.Lock()
	defer lock.Unlock()

	occupied, err := e.bookings.OccupiedSlots(ctx, pitch.ID, day)
	if err != nil {
		return zero, err
	}
	for _, s := range occupied {
		if s == p.TimeSlot {
			metrics.IncConflict()
			e.log.Info().Uint64("pitch_id", pitch.ID).Str("date", day).
				Str("slot", p.TimeSlot).Msg("booking rejected: slot taken")
			return zero, repository.ErrSlotTaken
		}
	}

	b := model.Booking{
		Reference:    uuid.NewString(),
		PitchID:      pitch.ID,
		PitchName:    pitch.Name,
		Date:         day,
		DateLabel:    label,
		TimeSlot:     p.TimeSlot,
		CustomerID:   p.CustomerID,
		CustomerName: name,
		Phone:        strings.TrimSpace(p.Phone),
		Price:        pitch.PriceValue,
		Status:       model.BookingPending,
	}
	if err := e.bookings.Create(ctx, &b); err != nil {
		return zero, err
	}
	metrics.IncCreated()
	return b, nil
}

// Get returns a booking by id.
func (e *Engine) Get(ctx context.Context, id uint64) (model.Booking, error) {
	return e.bookings.GetByID(ctx, id)
}

// Transition moves a booking to the next status under the lifecycle rules:
// pending may become confirmed or cancelled, confirmed may only become
// cancelled, and cancelled is terminal.  Re-entering the current state is
// rejected as well, so a double confirm surfaces as an error instead of
// silently succeeding.
func (e *Engine) Transition(ctx context.Context, id uint64, next string) (model.Booking, error) {
	return e.transition(ctx, id, next, nil)
}

func (e *Engine) transition(ctx context.Context, id uint64, next string, paymentMethod *string) (model.Booking, error) {
	var zero model.Booking
	if next != model.BookingConfirmed && next != model.BookingCancelled {
		return zero, fmt.Errorf("%w: unknown target status %q", ErrValidation, next)
	}
	b, err := e.bookings.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	allowed := (b.Status == model.BookingPending) ||
		(b.Status == model.BookingConfirmed && next == model.BookingCancelled)
	if !allowed || b.Status == next {
		return zero, repository.ErrInvalidTransition
	}

	var confirmedAt *time.Time
	if next == model.BookingConfirmed {
		t := time.Now().UTC()
		confirmedAt = &t
	}
	ok, err := e.bookings.SetStatus(ctx, id, b.Status, next, confirmedAt, paymentMethod)
	if err != nil {
		return zero, err
	}
	if !ok {
		// Lost a race against a concurrent transition.
		return zero, repository.ErrInvalidTransition
	}
	metrics.IncTransition(next)

	b.Status = next
	b.ConfirmedAt = confirmedAt
	if paymentMethod != nil {
		b.PaymentMethod = paymentMethod
	}
	if next == model.BookingConfirmed {
		e.publishConfirmed(ctx, b)
	}
	return b, nil
}

// BulkResult reports the outcome of one id in a bulk transition.
type BulkResult struct {
	ID      uint64 `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// BulkTransition applies Transition to each id independently.  One invalid
// id never aborts the others; the caller receives a per-id tally.
func (e *Engine) BulkTransition(ctx context.Context, ids []uint64, next string) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if _, err := e.Transition(ctx, id, next); err != nil {
			results = append(results, BulkResult{ID: id, Message: err.Error()})
			continue
		}
		results = append(results, BulkResult{ID: id, OK: true})
	}
	return results
}

// ConfirmMockPayment confirms a pending booking and records the chosen
// payment method.  No money moves and no gateway is called; the simulated
// payment reuses the ordinary pending->confirmed transition, so a booking
// that is not pending fails with ErrInvalidTransition.
func (e *Engine) ConfirmMockPayment(ctx context.Context, id uint64, method string) (model.Booking, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return model.Booking{}, fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	return e.transition(ctx, id, model.BookingConfirmed, &method)
}

// publishConfirmed emits a booking.confirmed event.  Failures are logged
// and ignored so broker outages never fail the request.
func (e *Engine) publishConfirmed(ctx context.Context, b model.Booking) {
	if e.publish == nil {
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		Reference:    b.Reference,
		PitchID:      b.PitchID,
		PitchName:    b.PitchName,
		Date:         b.Date,
		TimeSlot:     b.TimeSlot,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		Price:        b.Price,
	}
	if b.PaymentMethod != nil {
		ev.PaymentMethod = *b.PaymentMethod
	}
	if b.ConfirmedAt != nil {
		ev.ConfirmedAt = b.ConfirmedAt.Format(time.RFC3339)
	}
	if err := e.publish(ctx, ev); err != nil {
		e.log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("publish booking.confirmed failed")
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/soccerzone/pitch-booking/internal/model"
)

// BookingRepo provides persistence for the bookings table.  The booking
// engine serializes conflicting writers above this layer, so the methods
// here are plain single-statement operations; SetStatus additionally uses
// a compare-and-set guard so racing transitions cannot both win.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id,reference,pitch_id,pitch_name,date,date_label,time_slot," +
	"customer_id,customer_name,phone,price,payment_method,status,created_at,confirmed_at,updated_at"

// BookingFilter narrows List results.  Zero values mean "no constraint".
// OwnerID joins through pitches so owners only ever see rows for their own
// pitches.
type BookingFilter struct {
	PitchID    uint64
	OwnerID    uint64
	CustomerID uint64
	Date       string
	Status     string
	Page       int
	Limit      int
}

// OccupiedSlots returns the time-slot labels held by pending or confirmed
// bookings for a pitch on a calendar day.  Cancelled bookings do not hold
// their slot.
func (r *BookingRepo) OccupiedSlots(ctx context.Context, pitchID uint64, date string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT time_slot FROM bookings WHERE pitch_id=? AND date=? AND status IN (?,?)",
		pitchID, date, model.BookingPending, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Create inserts a booking and populates the generated ID and timestamps
// on the model.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings
		 (reference, pitch_id, pitch_name, date, date_label, time_slot,
		  customer_id, customer_name, phone, price, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.Reference, b.PitchID, b.PitchName, b.Date, b.DateLabel, b.TimeSlot,
		b.CustomerID, b.CustomerName, b.Phone, b.Price, b.Status, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func scanBooking(scan func(dest ...interface{}) error) (model.Booking, error) {
	var b model.Booking
	var customerID sql.NullInt64
	var payment sql.NullString
	var confirmedAt sql.NullTime
	err := scan(&b.ID, &b.Reference, &b.PitchID, &b.PitchName, &b.Date, &b.DateLabel,
		&b.TimeSlot, &customerID, &b.CustomerName, &b.Phone, &b.Price,
		&payment, &b.Status, &b.CreatedAt, &confirmedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if customerID.Valid {
		cid := uint64(customerID.Int64)
		b.CustomerID = &cid
	}
	if payment.Valid {
		pm := payment.String
		b.PaymentMethod = &pm
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	return b, nil
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=? LIMIT 1", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// SetStatus performs a compare-and-set status transition.  The row is only
// written when its current status equals from; the return value reports
// whether the write happened.  confirmedAt and paymentMethod are written
// only when non-nil so cancellation never clears confirmation data.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, from, to string, confirmedAt *time.Time, paymentMethod *string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings
		 SET status=?, confirmed_at=COALESCE(?, confirmed_at),
		     payment_method=COALESCE(?, payment_method), updated_at=NOW()
		 WHERE id=? AND status=?`,
		to, confirmedAt, paymentMethod, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns bookings matching the filter plus the total match count.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, int, error) {
	where := make([]string, 0, 5)
	args := make([]interface{}, 0, 7)
	join := ""
	if f.OwnerID != 0 {
		join = " JOIN pitches p ON p.id = b.pitch_id"
		where = append(where, "p.owner_id=?")
		args = append(args, f.OwnerID)
	}
	if f.PitchID != 0 {
		where = append(where, "b.pitch_id=?")
		args = append(args, f.PitchID)
	}
	if f.CustomerID != 0 {
		where = append(where, "b.customer_id=?")
		args = append(args, f.CustomerID)
	}
	if f.Date != "" {
		where = append(where, "b.date=?")
		args = append(args, f.Date)
	}
	if f.Status != "" {
		where = append(where, "b.status=?")
		args = append(args, f.Status)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings b"+join+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Qualify every column: the pitches join shares several column names.
	cols := "b." + strings.ReplaceAll(bookingCols, ",", ",b.")
	q := "SELECT " + cols + " FROM bookings b" + join + cond + " ORDER BY b.created_at DESC"
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, (page-1)*f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}

// Delete physically removes a booking (admin-only path).  It returns
// ErrBookingNotFound when nothing was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// PitchOwner returns the owner id of the pitch a booking references.  Used
// by owner endpoints to enforce that owners only manage their own rows.
func (r *BookingRepo) PitchOwner(ctx context.Context, bookingID uint64) (uint64, error) {
	var ownerID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.owner_id FROM bookings b JOIN pitches p ON p.id = b.pitch_id WHERE b.id=?`,
		bookingID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookingNotFound
	}
	return ownerID, err
}

// RevenueRow is one line of the revenue report: confirmed bookings
// aggregated per pitch over a date range.
type RevenueRow struct {
	PitchID   uint64 `json:"pitchId"`
	PitchName string `json:"pitchName"`
	Bookings  int    `json:"bookings"`
	Revenue   int64  `json:"revenue"`
}

// Revenue aggregates confirmed bookings per pitch between from and to
// (inclusive, YYYY-MM-DD).  A non-zero ownerID restricts the report to
// that owner's pitches.
func (r *BookingRepo) Revenue(ctx context.Context, from, to string, ownerID uint64) ([]RevenueRow, error) {
	q := `SELECT b.pitch_id, b.pitch_name, COUNT(*), COALESCE(SUM(b.price),0)
	      FROM bookings b`
	args := []interface{}{}
	where := []string{"b.status=?", "b.date BETWEEN ? AND ?"}
	if ownerID != 0 {
		q += " JOIN pitches p ON p.id = b.pitch_id"
		where = append(where, "p.owner_id=?")
	}
	args = append(args, model.BookingConfirmed, from, to)
	if ownerID != 0 {
		args = append(args, ownerID)
	}
	q += " WHERE " + strings.Join(where, " AND ") + " GROUP BY b.pitch_id, b.pitch_name ORDER BY SUM(b.price) DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RevenueRow, 0)
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.PitchID, &row.PitchName, &row.Bookings, &row.Revenue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/soccerzone/pitch-booking/internal/model"
)

// PitchRepo provides persistence for pitches and their configured time
// slots.  Slots live in the pitch_slots table (one row per label) and are
// loaded alongside each pitch so callers always see the full entity.
type PitchRepo struct{ DB *sql.DB }

func NewPitchRepo(db *sql.DB) *PitchRepo { return &PitchRepo{DB: db} }

// PitchFilter narrows List results.  Zero values mean "no constraint".
// Page is 1-based; Limit caps the page size.
type PitchFilter struct {
	Query    string // substring match on name or location
	Type     string
	Status   string
	OwnerID  uint64
	MinPrice int64
	MaxPrice int64
	Page     int
	Limit    int
}

const pitchCols = "id,owner_id,name,location,price,price_value,type,status,image,created_at,updated_at"

// Create inserts a pitch together with its slot rows inside one
// transaction and populates the generated ID on the model.
func (r *PitchRepo) Create(ctx context.Context, p *model.Pitch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO pitches (owner_id, name, location, price, price_value, type, status, image) VALUES (?,?,?,?,?,?,?,?)",
		p.OwnerID, p.Name, p.Location, p.Price, p.PriceValue, p.Type, p.Status, p.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	if err := r.replaceSlotsTx(ctx, tx, p.ID, p.Slots); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// replaceSlotsTx rewrites the slot rows for a pitch.
func (r *PitchRepo) replaceSlotsTx(ctx context.Context, tx *sql.Tx, pitchID uint64, slots []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM pitch_slots WHERE pitch_id=?", pitchID); err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	q := "INSERT INTO pitch_slots (pitch_id, label) VALUES "
	args := make([]interface{}, 0, len(slots)*2)
	for i, s := range slots {
		if i > 0 {
			q += ","
		}
		q += "(?,?)"
		args = append(args, pitchID, s)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// GetByID returns a pitch with its slots loaded, or ErrPitchNotFound.
func (r *PitchRepo) GetByID(ctx context.Context, id uint64) (model.Pitch, error) {
	var p model.Pitch
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+pitchCols+" FROM pitches WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Location, &p.Price, &p.PriceValue,
			&p.Type, &p.Status, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, ErrPitchNotFound
		}
		return p, err
	}
	p.Slots, err = r.slots(ctx, p.ID)
	return p, err
}

func (r *PitchRepo) slots(ctx context.Context, pitchID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT label FROM pitch_slots WHERE pitch_id=? ORDER BY label", pitchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns pitches matching the filter plus the total match count for
// pagination.  Slots are fetched in a second query covering the whole page.
func (r *PitchRepo) List(ctx context.Context, f PitchFilter) ([]model.Pitch, int, error) {
	where := make([]string, 0, 5)
	args := make([]interface{}, 0, 8)
	if f.Query != "" {
		where = append(where, "(name LIKE ? OR location LIKE ?)")
		pat := "%" + f.Query + "%"
		args = append(args, pat, pat)
	}
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, f.Type)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	if f.OwnerID != 0 {
		where = append(where, "owner_id=?")
		args = append(args, f.OwnerID)
	}
	if f.MinPrice > 0 {
		where = append(where, "price_value>=?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where = append(where, "price_value<=?")
		args = append(args, f.MaxPrice)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM pitches"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := "SELECT " + pitchCols + " FROM pitches" + cond + " ORDER BY created_at DESC"
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

	pitches := make([]model.Pitch, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var p model.Pitch
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Location, &p.Price, &p.PriceValue,
			&p.Type, &p.Status, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		p.Slots = []string{}
		index[p.ID] = len(pitches)
		pitches = append(pitches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(pitches) == 0 {
		return pitches, total, nil
	}

	ids := make([]interface{}, 0, len(pitches))
	ph := make([]string, 0, len(pitches))
	for _, p := range pitches {
		ids = append(ids, p.ID)
		ph = append(ph, "?")
	}
	srows, err := r.DB.QueryContext(ctx,
		"SELECT pitch_id, label FROM pitch_slots WHERE pitch_id IN ("+strings.Join(ph, ",")+") ORDER BY pitch_id, label",
		ids...)
	if err != nil {
		return nil, 0, err
	}
	defer srows.Close()
	for srows.Next() {
		var pid uint64
		var label string
		if err := srows.Scan(&pid, &label); err != nil {
			return nil, 0, err
		}
		if idx, ok := index[pid]; ok {
			pitches[idx].Slots = append(pitches[idx].Slots, label)
		}
	}
	return pitches, total, srows.Err()
}

// Update rewrites a pitch's editable fields and slot catalog.  The owner
// check is enforced here: a non-zero ownerID must match the stored owner
// or ErrForbidden is returned.
func (r *PitchRepo) Update(ctx context.Context, p *model.Pitch, ownerID uint64) error {
	if err := r.checkOwner(ctx, p.ID, ownerID); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"UPDATE pitches SET name=?, location=?, price=?, price_value=?, type=?, image=?, updated_at=NOW() WHERE id=?",
		p.Name, p.Location, p.Price, p.PriceValue, p.Type, p.Image, p.ID); err != nil {
		return err
	}
	if err := r.replaceSlotsTx(ctx, tx, p.ID, p.Slots); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetStatus transitions a pitch between active/pending/locked.
func (r *PitchRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE pitches SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM pitches WHERE id=?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPitchNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a pitch and its slot rows.  ownerID semantics match Update.
func (r *PitchRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM pitch_slots WHERE pitch_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pitches WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// checkOwner verifies existence and, when ownerID is non-zero, ownership.
func (r *PitchRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	var actual uint64
	err := r.DB.QueryRowContext(ctx, "SELECT owner_id FROM pitches WHERE id=?", id).Scan(&actual)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPitchNotFound
		}
		return err
	}
	if ownerID != 0 && actual != ownerID {
		return ErrForbidden
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/soccerzone/pitch-booking/internal/model"
)

// ReviewRepo provides CRUD for the reviews table.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewCols = "id,author,avatar,rating,comment,pitch_id,status,created_at,updated_at"

// Create inserts a review and populates its generated ID.  Rating bounds
// are validated by the handler before reaching this layer.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (author, avatar, rating, comment, pitch_id, status) VALUES (?,?,?,?,?,?)",
		rv.Author, rv.Avatar, rv.Rating, rv.Comment, rv.PitchID, rv.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// List returns reviews, newest first.  When activeOnly is set only active
// rows are returned; a non-zero pitchID restricts to one pitch.
func (r *ReviewRepo) List(ctx context.Context, activeOnly bool, pitchID uint64) ([]model.Review, error) {
	q := "SELECT " + reviewCols + " FROM reviews"
	where := ""
	args := []interface{}{}
	if activeOnly {
		where = " WHERE status=?"
		args = append(args, model.ContentActive)
	}
	if pitchID != 0 {
		if where == "" {
			where = " WHERE pitch_id=?"
		} else {
			where += " AND pitch_id=?"
		}
		args = append(args, pitchID)
	}
	rows, err := r.DB.QueryContext(ctx, q+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		var avatar sql.NullString
		var pid sql.NullInt64
		if err := rows.Scan(&rv.ID, &rv.Author, &avatar, &rv.Rating, &rv.Comment,
			&pid, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		if avatar.Valid {
			a := avatar.String
			rv.Avatar = &a
		}
		if pid.Valid {
			p := uint64(pid.Int64)
			rv.PitchID = &p
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// SetStatus toggles a review between active and inactive (moderation).
func (r *ReviewRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM reviews WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a review; sql.ErrNoRows when it does not exist.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

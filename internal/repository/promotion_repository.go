package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/soccerzone/pitch-booking/internal/model"
)

// PromotionRepo provides CRUD for the promotions table.  Promotions are
// pure content rows; the only behavior here is the validity-window filter
// applied to the public listing.
type PromotionRepo struct{ DB *sql.DB }

func NewPromotionRepo(db *sql.DB) *PromotionRepo { return &PromotionRepo{DB: db} }

const promoCols = "id,title,description,content,type,image,discount,badge,valid_from,valid_until,status,created_at,updated_at"

// Create inserts a promotion and populates its generated ID.
func (r *PromotionRepo) Create(ctx context.Context, p *model.Promotion) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO promotions (title, description, content, type, image, discount, badge, valid_from, valid_until, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.Title, p.Description, p.Content, p.Type, p.Image, p.Discount, p.Badge,
		p.ValidFrom, p.ValidUntil, p.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func scanPromotion(scan func(dest ...interface{}) error) (model.Promotion, error) {
	var p model.Promotion
	var content, image, discount, badge sql.NullString
	var from, until sql.NullTime
	err := scan(&p.ID, &p.Title, &p.Description, &content, &p.Type, &image,
		&discount, &badge, &from, &until, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if content.Valid {
		v := content.String
		p.Content = &v
	}
	if image.Valid {
		v := image.String
		p.Image = &v
	}
	if discount.Valid {
		v := discount.String
		p.Discount = &v
	}
	if badge.Valid {
		v := badge.String
		p.Badge = &v
	}
	if from.Valid {
		t := from.Time
		p.ValidFrom = &t
	}
	if until.Valid {
		t := until.Time
		p.ValidUntil = &t
	}
	return p, nil
}

// GetByID returns a promotion or sql.ErrNoRows.
func (r *PromotionRepo) GetByID(ctx context.Context, id uint64) (model.Promotion, error) {
	return scanPromotion(r.DB.QueryRowContext(ctx,
		"SELECT "+promoCols+" FROM promotions WHERE id=? LIMIT 1", id).Scan)
}

// List returns promotions, newest first.  When activeOnly is set, inactive
// rows and rows outside their validity window are excluded.
func (r *PromotionRepo) List(ctx context.Context, activeOnly bool, promoType string) ([]model.Promotion, error) {
	q := "SELECT " + promoCols + " FROM promotions"
	where := ""
	args := []interface{}{}
	if activeOnly {
		where = " WHERE status=? AND (valid_from IS NULL OR valid_from<=?) AND (valid_until IS NULL OR valid_until>=?)"
		now := time.Now().UTC()
		args = append(args, model.ContentActive, now, now)
	}
	if promoType != "" {
		if where == "" {
			where = " WHERE type=?"
		} else {
			where += " AND type=?"
		}
		args = append(args, promoType)
	}
	rows, err := r.DB.QueryContext(ctx, q+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites all editable fields of a promotion.
func (r *PromotionRepo) Update(ctx context.Context, p *model.Promotion) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE promotions SET title=?, description=?, content=?, type=?, image=?,
		 discount=?, badge=?, valid_from=?, valid_until=?, status=?, updated_at=NOW()
		 WHERE id=?`,
		p.Title, p.Description, p.Content, p.Type, p.Image, p.Discount, p.Badge,
		p.ValidFrom, p.ValidUntil, p.Status, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM promotions WHERE id=?", p.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a promotion; sql.ErrNoRows when it does not exist.
func (r *PromotionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM promotions WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

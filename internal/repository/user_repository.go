package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/utils"
)

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,name,phone,role,is_active,avatar,password_hash,created_at,updated_at"

// Create inserts a user and returns its ID.  Emails are normalized to
// lower case before insertion; a duplicate email surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, name, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, phone, role) VALUES (?,?,?,?,?)",
		email, hash, name, phone, role)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepo) scanRow(row *sql.Row) (model.User, error) {
	var u model.User
	var avatar sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.IsActive,
		&avatar, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if avatar.Valid {
		a := avatar.String
		u.Avatar = &a
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns all users ordered by creation time, newest first.  An
// optional role filter narrows the result.
func (r *UserRepo) List(ctx context.Context, role string) ([]model.User, error) {
	q := "SELECT " + userCols + " FROM users"
	args := []interface{}{}
	if role != "" {
		q += " WHERE role=?"
		args = append(args, role)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var avatar sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.IsActive,
			&avatar, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if avatar.Valid {
			a := avatar.String
			u.Avatar = &a
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile changes a user's own name, phone and avatar.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, phone string, avatar *string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, phone=?, avatar=?, updated_at=NOW() WHERE id=?",
		name, phone, avatar, id)
	return err
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?", hash, id)
	return err
}

// UpdateManaged applies admin-side changes: role and active flag.  It
// returns sql.ErrNoRows when the user does not exist.
func (r *UserRepo) UpdateManaged(ctx context.Context, id uint64, role string, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, is_active=?, updated_at=NOW() WHERE id=?",
		role, isActive, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "missing" from "unchanged": an UPDATE that writes the
		// same values reports zero affected rows on MySQL, so check existence.
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

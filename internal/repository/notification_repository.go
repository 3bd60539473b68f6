package repository

import (
	"context"
	"database/sql"

	"github.com/soccerzone/pitch-booking/internal/model"
)

// NotificationRepo provides persistence for per-user notifications.  Rows
// are written by the booking event consumer and polled by the frontend;
// there is no push channel.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification row for a user.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message, link) VALUES (?,?,?)",
		n.UserID, n.Message, n.Link)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,message,link,is_read,created_at FROM notifications WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var link sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if link.Valid {
			l := link.String
			n.Link = &l
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.  The user id guards against
// marking another user's rows; sql.ErrNoRows when nothing matched.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM notifications WHERE id=? AND user_id=?", id, userID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

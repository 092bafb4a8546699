package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mmoldabe-dev/subtrack/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

const defaultNotificationLimit = 50

type NotificationInterface interface {
	Exists(ctx context.Context, userID uuid.UUID, key domain.DedupKey) (bool, error)
	Create(ctx context.Context, n *domain.Notification) error
	DeleteStale(ctx context.Context, userID uuid.UUID, types []domain.NotificationType, now, cutoff time.Time) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context, userID uuid.UUID, q domain.NotificationQuery, now time.Time) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type NotificationRepository struct {
	db  *sql.DB
	log *slog.Logger
}

var _ NotificationInterface = (*NotificationRepository)(nil)

func NewNotificationRepository(db *sql.DB, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log.With(slog.String("component", "repository")),
	}
}

const notificationColumns = `id, user_id, subscription_id, type, title, message, priority, read, action_url,
	metadata, expires_at, created_at`

func scanNotification(row rowScanner, n *domain.Notification) error {
	var meta []byte
	if err := row.Scan(
		&n.ID, &n.UserID, &n.SubscriptionID, &n.Type, &n.Title, &n.Message, &n.Priority, &n.Read,
		&n.ActionURL, &meta, &n.ExpiresAt, &n.CreatedAt,
	); err != nil {
		return err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &n.Metadata); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}
	}
	return nil
}

func (r *NotificationRepository) Exists(ctx context.Context, userID uuid.UUID, key domain.DedupKey) (bool, error) {
	const op = "repository.postgres.Notification.Exists"
	query := `SELECT EXISTS(
		SELECT 1 FROM notifications
		WHERE user_id = $1 AND subscription_id = $2 AND type = $3 AND expires_at = $4
	)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, key.SubscriptionID, key.Type, key.ExpiresAt).Scan(&exists)
	if err != nil {
		r.log.Error("failed to check notification existence", slog.String("op", op), slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// Create inserts n. A conflict on the dedup index is reported as
// domain.ErrAlreadyExists.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const op = "repository.postgres.Notification.Create"
	query := `INSERT INTO notifications (id, user_id, subscription_id, type, title, message, priority, read,
		action_url, metadata, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at`

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		return fmt.Errorf("%s: encode metadata: %w", op, err)
	}

	err = r.db.QueryRowContext(ctx, query,
		n.ID, n.UserID, n.SubscriptionID, n.Type, n.Title, n.Message, n.Priority, n.Read,
		n.ActionURL, string(meta), n.ExpiresAt,
	).Scan(&n.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
		}
		r.log.Error("failed to create notification", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteStale removes the user's notifications of the given types whose
// expiry already passed or lies beyond cutoff.
func (r *NotificationRepository) DeleteStale(ctx context.Context, userID uuid.UUID, types []domain.NotificationType, now, cutoff time.Time) (int64, error) {
	const op = "repository.postgres.Notification.DeleteStale"
	query := `DELETE FROM notifications
	WHERE user_id = $1 AND type = ANY($2::varchar[])
	  AND expires_at IS NOT NULL AND (expires_at < $3 OR expires_at > $4)`

	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = string(t)
	}

	res, err := r.db.ExecContext(ctx, query, userID, pq.Array(keys), now, cutoff)
	if err != nil {
		r.log.Error("failed to delete stale notifications", slog.String("op", op), slog.String("error", err.Error()))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	return rows, nil
}

// DeleteExpired removes every user's notifications that expired before now.
func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.postgres.Notification.DeleteExpired"

	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	return rows, nil
}

func (r *NotificationRepository) List(ctx context.Context, userID uuid.UUID, q domain.NotificationQuery, now time.Time) ([]domain.Notification, error) {
	const op = "repository.postgres.Notification.List"

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	args := []any{userID}

	if q.UnreadOnly {
		query += " AND read = FALSE"
	}
	if !q.IncludeExpired {
		args = append(args, now)
		query += fmt.Sprintf(" AND (expires_at IS NULL OR expires_at >= $%d)", len(args))
	}

	query += ` ORDER BY expires_at ASC NULLS LAST,
		CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END DESC,
		created_at DESC`

	limit := q.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list notifications", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	list := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	const op = "repository.postgres.Notification.CountUnread"
	query := `SELECT COUNT(*) FROM notifications
	WHERE user_id = $1 AND read = FALSE AND (expires_at IS NULL OR expires_at >= $2)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// MarkAsRead flags one notification owned by userID as read.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	const op = "repository.postgres.Notification.MarkAsRead"
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	RETURNING ` + notificationColumns

	var n domain.Notification
	if err := scanNotification(r.db.QueryRowContext(ctx, query, id, userID), &n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: notification %s: %w", op, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "repository.postgres.Notification.MarkAllAsRead"

	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	return rows, nil
}

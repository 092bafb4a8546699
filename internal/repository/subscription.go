package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmoldabe-dev/subtrack/internal/domain"
)

type SubscriptionInterface interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error)
	ListDue(ctx context.Context, userID uuid.UUID, status domain.Status, from, to time.Time) ([]domain.Subscription, error)
	Update(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type SubscriptionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

var _ SubscriptionInterface = (*SubscriptionRepository)(nil)

func NewSubscriptionRepository(db *sql.DB, log *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:  db,
		log: log.With(slog.String("component", "repository")),
	}
}

const subscriptionColumns = `id, user_id, name, description, category, price, currency, cycle, billing_day,
	next_billing, start_date, status, color, notes, logo, url, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner, sub *domain.Subscription) error {
	return row.Scan(
		&sub.ID, &sub.UserID, &sub.Name, &sub.Description, &sub.Category, &sub.Price, &sub.Currency,
		&sub.Cycle, &sub.BillingDay, &sub.NextBilling, &sub.StartDate, &sub.Status, &sub.Color,
		&sub.Notes, &sub.Logo, &sub.URL, &sub.CreatedAt, &sub.UpdatedAt,
	)
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const op = "repository.postgres.Subscription.Create"
	query := `INSERT INTO subscriptions (id, user_id, name, description, category, price, currency, cycle,
		billing_day, next_billing, start_date, status, color, notes, logo, url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING created_at, updated_at`

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.Name, sub.Description, sub.Category, sub.Price, sub.Currency, sub.Cycle,
		sub.BillingDay, sub.NextBilling, sub.StartDate, sub.Status, sub.Color, sub.Notes, sub.Logo, sub.URL,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create subscription", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetByID only returns rows owned by userID; anything else is ErrNotFound.
func (r *SubscriptionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	const op = "repository.postgres.Subscription.GetByID"
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`

	var sub domain.Subscription
	err := scanSubscription(r.db.QueryRowContext(ctx, query, id, userID), &sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: subscription %s: %w", op, id, domain.ErrNotFound)
		}
		r.log.Error("failed to get subscription",
			slog.String("op", op),
			slog.String("id", id.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	const op = "repository.postgres.Subscription.List"

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	args := []any{userID}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.MinPrice.IsPositive() {
		args = append(args, filter.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if filter.MaxPrice.IsPositive() {
		args = append(args, filter.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}

	query += " ORDER BY next_billing ASC, id"

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	subs, err := r.query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to get list", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ListAll returns every subscription of the user as one snapshot.
func (r *SubscriptionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	const op = "repository.postgres.Subscription.ListAll"
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY next_billing ASC`

	subs, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ListDue returns subscriptions in status whose next charge falls in [from, to).
func (r *SubscriptionRepository) ListDue(ctx context.Context, userID uuid.UUID, status domain.Status, from, to time.Time) ([]domain.Subscription, error) {
	const op = "repository.postgres.Subscription.ListDue"
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
	WHERE user_id = $1 AND status = $2 AND next_billing >= $3 AND next_billing < $4
	ORDER BY next_billing ASC`

	subs, err := r.query(ctx, query, userID, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	const op = "repository.postgres.Subscription.Update"
	query := `UPDATE subscriptions SET
		name = $3, description = $4, category = $5, price = $6, currency = $7, cycle = $8, billing_day = $9,
		next_billing = $10, start_date = $11, status = $12, color = $13, notes = $14, logo = $15, url = $16,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.Name, sub.Description, sub.Category, sub.Price, sub.Currency, sub.Cycle,
		sub.BillingDay, sub.NextBilling, sub.StartDate, sub.Status, sub.Color, sub.Notes, sub.Logo, sub.URL,
	).Scan(&sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: subscription %s: %w", op, sub.ID, domain.ErrNotFound)
		}
		r.log.Error("failed to update subscription", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const op = "repository.postgres.Subscription.Delete"
	query := `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.log.Error("failed to execute delete query",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: subscription %s: %w", op, id, domain.ErrNotFound)
	}
	r.log.Info("subscription deleted successfully", slog.String("id", id.String()))
	return nil
}

func (r *SubscriptionRepository) query(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0)
	for rows.Next() {
		var sub domain.Subscription
		if err := scanSubscription(rows, &sub); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

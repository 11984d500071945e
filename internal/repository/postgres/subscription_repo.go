// internal/repository/postgres/subscription_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notifyme-service/internal/domain/subscription"
	"notifyme-service/internal/domain/user"
	xerrors "notifyme-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `
	s.id, s.user_id, s.plan_id, p.name, s.start_date, s.end_date, s.created_at, s.updated_at
`

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, plan_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		sub.UserID, sub.PlanID, sub.StartDate, sub.EndDate,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id int64) (*subscription.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.id = $1
	`, subscriptionColumns)

	var sub subscription.Subscription
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.PlanName,
		&sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return &sub, nil
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]subscription.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		ORDER BY s.id
	`, subscriptionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	return scanSubscriptions(rows)
}

// ListExpiring returns subscriptions whose end date falls in the half-open
// window (from, to]: not yet expired, but expiring soon.
func (r *SubscriptionRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]subscription.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.end_date > $1 AND s.end_date <= $2
		ORDER BY s.end_date
	`, subscriptionColumns)

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}
	defer rows.Close()

	return scanSubscriptions(rows)
}

// FindUser resolves the owner of a subscription. Exposed here so the expiry
// scanner needs a single store dependency.
func (r *SubscriptionRepository) FindUser(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanSubscriptions(rows pgx.Rows) ([]subscription.Subscription, error) {
	subs := []subscription.Subscription{}
	for rows.Next() {
		var sub subscription.Subscription
		if err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.PlanID, &sub.PlanName,
			&sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

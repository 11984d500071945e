// internal/repository/postgres/plan_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"notifyme-service/internal/domain/plan"
	xerrors "notifyme-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionPlanRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionPlanRepository(db *pgxpool.Pool) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{db: db}
}

func (r *SubscriptionPlanRepository) Create(ctx context.Context, p *plan.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (name, rank, duration_days)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, p.Name, p.Rank, p.DurationDays).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

func (r *SubscriptionPlanRepository) FindByID(ctx context.Context, id int64) (*plan.SubscriptionPlan, error) {
	query := `
		SELECT id, name, rank, duration_days, created_at
		FROM subscription_plans
		WHERE id = $1
	`

	var p plan.SubscriptionPlan
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Rank, &p.DurationDays, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	return &p, nil
}

func (r *SubscriptionPlanRepository) List(ctx context.Context) ([]plan.SubscriptionPlan, error) {
	query := `
		SELECT id, name, rank, duration_days, created_at
		FROM subscription_plans
		ORDER BY rank
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []plan.SubscriptionPlan{}
	for rows.Next() {
		var p plan.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Rank, &p.DurationDays, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

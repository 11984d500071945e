// internal/domain/subscription/entity.go
package subscription

import "time"

type Subscription struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	PlanID int64 `json:"plan_id" db:"plan_id"`

	// PlanName is joined from the plans table on read.
	PlanName string `json:"plan_name" db:"plan_name"`

	// EndDate is always StartDate + the plan's duration, never null.
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DTOs

type CreateSubscriptionRequest struct {
	UserID    int64      `json:"user_id" binding:"required"`
	PlanID    int64      `json:"plan_id" binding:"required"`
	StartDate *time.Time `json:"start_date,omitempty"`
}

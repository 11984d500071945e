// internal/domain/plan/entity.go
package plan

import "time"

// Tier names are fixed; a plan row outside this set is rejected by the catalog.
const (
	TierBasic    = "BASIC"
	TierRegular  = "REGULAR"
	TierStandard = "STANDARD"
	TierPremium  = "PREMIUM"
)

type SubscriptionPlan struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Rank         int       `json:"rank" db:"rank"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DTOs

type CreatePlanRequest struct {
	Name string `json:"name" binding:"required,max=40"`
}

// internal/domain/notification/entity.go
package notification

import (
	"time"

	"github.com/lib/pq"
)

type NotificationType string

// Type tags mirror the notification type table; the realtime layer treats
// them as informational only.
const (
	TypeNewFeature       NotificationType = "NEW FEATURE ADDED"
	TypeSessionStarted   NotificationType = "SESSION STARTED"
	TypeSessionEnded     NotificationType = "SESSION ENDED"
	TypePrivateMessage   NotificationType = "PRIVATE MESSAGE"
	TypeMaintenanceAlert NotificationType = "MAINTENANCE ALERT"
	TypePlanUpdate       NotificationType = "SUBSCRIPTION PLAN UPDATE"
	TypeSuggestions      NotificationType = "GIVE SUGGESTIONS"
)

type Notification struct {
	ID        int64            `json:"id" db:"id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Recipient string           `json:"recipient,omitempty" db:"recipient"`
	Type      NotificationType `json:"notification_type" db:"notification_type"`

	// RecommendedPlans is only set on expiry warnings.
	RecommendedPlans pq.StringArray `json:"recommended_plans,omitempty" db:"recommended_plans"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DTOs

type CreateNotificationRequest struct {
	Title            string           `json:"title" binding:"required,max=40"`
	Message          string           `json:"message" binding:"required,max=100"`
	Recipient        string           `json:"recipient,omitempty"`
	Type             NotificationType `json:"notification_type" binding:"required"`
	RecommendedPlans []string         `json:"recommended_plans,omitempty"`

	// TargetGroup addresses the live push; empty means the global group.
	TargetGroup     string `json:"target_group,omitempty"`
	RecipientUserID int64  `json:"recipient_user_id,omitempty"`
}

// internal/service/notification/service.go
package notification

import (
	"context"
	"fmt"

	"notifyme-service/internal/domain/notification"
	wstypes "notifyme-service/internal/domain/websocket"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Store is the persistence collaborator for notification records.
type Store interface {
	Create(ctx context.Context, n *notification.Notification) error
	List(ctx context.Context, limit int) ([]notification.Notification, error)
	Delete(ctx context.Context, id int64) error
}

// Publisher is the live fan-out side, satisfied by the websocket hub.
type Publisher interface {
	Publish(group string, evt *wstypes.Event)
}

// NotificationService persists notifications and pushes them to connected
// clients. The push happens explicitly after a successful write; a failed
// write never reaches the wire.
type NotificationService struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func NewNotificationService(store Store, publisher Publisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateAndPush creates a notification record and pushes it to the target
// group. An empty target group addresses every connected client.
func (s *NotificationService) CreateAndPush(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	n := &notification.Notification{
		Title:            req.Title,
		Message:          req.Message,
		Recipient:        req.Recipient,
		Type:             req.Type,
		RecommendedPlans: pq.StringArray(req.RecommendedPlans),
	}

	if err := s.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	group := req.TargetGroup
	if group == "" {
		group = wstypes.GroupAll
	}

	evt, err := wstypes.NewEvent(kindForType(req.Type), n.Message, string(n.Type))
	if err != nil {
		// The record exists; a malformed push payload is not worth failing
		// the caller over.
		s.logger.Error("failed to build push event", zap.Int64("notification_id", n.ID), zap.Error(err))
		return n, nil
	}
	s.publisher.Publish(group, evt)

	s.logger.Info("notification created and pushed",
		zap.Int64("notification_id", n.ID),
		zap.String("notification_type", string(n.Type)),
		zap.String("group", group),
	)

	return n, nil
}

// BroadcastMaintenanceAlert pushes a maintenance alert to every connected
// client and records it.
func (s *NotificationService) BroadcastMaintenanceAlert(ctx context.Context, message string) (*notification.Notification, error) {
	return s.CreateAndPush(ctx, &notification.CreateNotificationRequest{
		Title:   "Maintenance alert",
		Message: message,
		Type:    notification.TypeMaintenanceAlert,
	})
}

// List returns the most recent notification records.
func (s *NotificationService) List(ctx context.Context, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.store.List(ctx, limit)
}

// Delete removes a notification record.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func kindForType(t notification.NotificationType) wstypes.EventKind {
	switch t {
	case notification.TypePlanUpdate:
		return wstypes.KindExpiryWarning
	case notification.TypeMaintenanceAlert:
		return wstypes.KindMaintenanceAlert
	default:
		return wstypes.KindAnnouncement
	}
}

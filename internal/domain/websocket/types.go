// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"fmt"
)

// EventKind tags the events flowing through the broadcast hub.
type EventKind string

const (
	KindExpiryWarning    EventKind = "expiry_warning"
	KindAnnouncement     EventKind = "announcement"
	KindMaintenanceAlert EventKind = "maintenance_alert"
	KindPlanAdded        EventKind = "plan_added"
	KindUserAdded        EventKind = "user_added"
)

// Group addressing. The literals are load-bearing: existing clients
// subscribe to exactly these names.
const GroupAll = "Our_clients"

// UserGroup returns the per-user group name for a decimal user id.
func UserGroup(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// Event is what the hub fans out. On the wire it is a JSON object whose
// "message" field existing clients depend on; the remaining fields are
// informational echoes.
type Event struct {
	Kind             EventKind `json:"-"`
	Message          string    `json:"message"`
	NotificationType string    `json:"notification_type,omitempty"`
	Status           string    `json:"status,omitempty"`
}

// NewEvent validates the payload at construction time so the hub never has
// to inspect it again.
func NewEvent(kind EventKind, message, notificationType string) (*Event, error) {
	switch kind {
	case KindExpiryWarning, KindAnnouncement, KindMaintenanceAlert, KindPlanAdded, KindUserAdded:
	default:
		return nil, fmt.Errorf("unrecognized event kind %q", kind)
	}
	if message == "" {
		return nil, fmt.Errorf("event message must not be empty")
	}

	return &Event{
		Kind:             kind,
		Message:          message,
		NotificationType: notificationType,
	}, nil
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// InboundMessage is what a connected client may send; it is re-broadcast to
// the group the client belongs to.
type InboundMessage struct {
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
}

func ParseInbound(data []byte) (*InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Message == "" {
		return nil, fmt.Errorf("inbound message missing message field")
	}
	return &msg, nil
}

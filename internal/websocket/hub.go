// internal/websocket/hub.go
package websocket

import (
	"sync"

	wstypes "notifyme-service/internal/domain/websocket"

	"go.uber.org/zap"
)

// Member is one live connection from the hub's point of view. Send must
// enqueue without blocking; an error means the connection is beyond saving
// and the hub drops it from every group.
type Member interface {
	ID() string
	Send(evt *wstypes.Event) error
}

// Hub maintains named broadcast groups and fans published events out to
// every member of a group. It is the only state shared between the expiry
// scanner and the per-connection goroutines, so every mutation goes through
// its mutex.
type Hub struct {
	mu sync.RWMutex

	// group name -> member id -> member
	groups map[string]map[string]Member

	// member id -> groups joined, for teardown
	joined map[string]map[string]struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		groups: make(map[string]map[string]Member),
		joined: make(map[string]map[string]struct{}),
		logger: logger,
	}
}

// Join adds a member to a group, creating the group on first join.
// Idempotent.
func (h *Hub) Join(m Member, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groups[group] == nil {
		h.groups[group] = make(map[string]Member)
	}
	h.groups[group][m.ID()] = m

	if h.joined[m.ID()] == nil {
		h.joined[m.ID()] = make(map[string]struct{})
	}
	h.joined[m.ID()][group] = struct{}{}
}

// Leave removes a member from a group. Empty groups are deleted so the hub
// does not leak names. Idempotent.
func (h *Hub) Leave(m Member, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(m.ID(), group)
}

func (h *Hub) leaveLocked(memberID, group string) {
	if members, ok := h.groups[group]; ok {
		delete(members, memberID)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	if groups, ok := h.joined[memberID]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(h.joined, memberID)
		}
	}
}

// Remove takes a member out of every group it joined. Safe to call for
// members the hub has never seen.
func (h *Hub) Remove(m Member) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for group := range h.joined[m.ID()] {
		h.leaveLocked(m.ID(), group)
	}
}

// Publish delivers an event to every member of the group at the moment of
// the call. Publishing to an empty or unknown group is a silent no-op. The
// member list is snapshotted under the lock and the sends happen outside it,
// so one slow client cannot stall joins and leaves. A member whose send
// fails is dropped from all groups; the remaining members still get the
// event.
func (h *Hub) Publish(group string, evt *wstypes.Event) {
	h.mu.RLock()
	snapshot := make([]Member, 0, len(h.groups[group]))
	for _, m := range h.groups[group] {
		snapshot = append(snapshot, m)
	}
	h.mu.RUnlock()

	for _, m := range snapshot {
		if err := m.Send(evt); err != nil {
			h.logger.Warn("dropping unresponsive member",
				zap.String("member_id", m.ID()),
				zap.String("group", group),
				zap.Error(err),
			)
			h.Remove(m)
		}
	}
}

// GroupSize reports the current member count of a group.
func (h *Hub) GroupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// GroupCount reports how many non-empty groups exist.
func (h *Hub) GroupCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups)
}

// TotalMembers reports how many distinct members are joined anywhere.
func (h *Hub) TotalMembers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.joined)
}

// Shutdown clears all membership state.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.groups = make(map[string]map[string]Member)
	h.joined = make(map[string]map[string]struct{})
}

package websocket

import (
	"fmt"
	"sync"
	"testing"

	wstypes "notifyme-service/internal/domain/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMember struct {
	id   string
	fail bool

	mu     sync.Mutex
	events []*wstypes.Event
}

func newFakeMember(id string) *fakeMember {
	return &fakeMember{id: id}
}

func (m *fakeMember) ID() string { return m.id }

func (m *fakeMember) Send(evt *wstypes.Event) error {
	if m.fail {
		return ErrSendBufferFull
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *fakeMember) received() []*wstypes.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*wstypes.Event, len(m.events))
	copy(out, m.events)
	return out
}

func mustEvent(t *testing.T, kind wstypes.EventKind, message string) *wstypes.Event {
	t.Helper()
	evt, err := wstypes.NewEvent(kind, message, "")
	require.NoError(t, err)
	return evt
}

func TestJoinLeaveRoundTrip(t *testing.T) {
	hub := NewHub(zap.NewNop())

	other := newFakeMember("other")
	hub.Join(other, "user_1")
	before := hub.GroupSize("user_1")

	m := newFakeMember("m")
	hub.Join(m, "user_1")
	hub.Join(m, "user_1") // idempotent
	assert.Equal(t, before+1, hub.GroupSize("user_1"))

	hub.Leave(m, "user_1")
	hub.Leave(m, "user_1") // idempotent
	assert.Equal(t, before, hub.GroupSize("user_1"))
}

func TestEmptyGroupsAreReclaimed(t *testing.T) {
	hub := NewHub(zap.NewNop())

	m := newFakeMember("m")
	hub.Join(m, "user_7")
	assert.Equal(t, 1, hub.GroupCount())

	hub.Leave(m, "user_7")
	assert.Equal(t, 0, hub.GroupCount())
	assert.Equal(t, 0, hub.TotalMembers())
}

func TestPublishIsolation(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := newFakeMember("a")
	b := newFakeMember("b")
	hub.Join(a, "user_1")
	hub.Join(b, "user_2")

	hub.Publish("user_1", mustEvent(t, wstypes.KindExpiryWarning, "expiring soon"))

	require.Len(t, a.received(), 1)
	assert.Equal(t, "expiring soon", a.received()[0].Message)
	assert.Empty(t, b.received())
}

func TestMultiGroupMembership(t *testing.T) {
	hub := NewHub(zap.NewNop())

	m := newFakeMember("m")
	hub.Join(m, wstypes.GroupAll)
	hub.Join(m, "user_42")

	hub.Publish(wstypes.GroupAll, mustEvent(t, wstypes.KindMaintenanceAlert, "maintenance at midnight"))
	hub.Publish("user_42", mustEvent(t, wstypes.KindExpiryWarning, "plan expiring"))
	hub.Publish("user_99", mustEvent(t, wstypes.KindExpiryWarning, "not for you"))

	got := m.received()
	require.Len(t, got, 2)
	assert.Equal(t, "maintenance at midnight", got[0].Message)
	assert.Equal(t, "plan expiring", got[1].Message)
}

func TestPublishToEmptyGroupIsNoOp(t *testing.T) {
	hub := NewHub(zap.NewNop())

	assert.NotPanics(t, func() {
		hub.Publish("user_404", mustEvent(t, wstypes.KindAnnouncement, "anyone there"))
	})
}

func TestFailingMemberIsDroppedOthersStillReceive(t *testing.T) {
	hub := NewHub(zap.NewNop())

	broken := newFakeMember("broken")
	broken.fail = true
	healthy := newFakeMember("healthy")

	hub.Join(broken, wstypes.GroupAll)
	hub.Join(broken, "user_5")
	hub.Join(healthy, wstypes.GroupAll)

	hub.Publish(wstypes.GroupAll, mustEvent(t, wstypes.KindAnnouncement, "hello"))

	require.Len(t, healthy.received(), 1)

	// the broken member must be gone from every group it joined
	assert.Equal(t, 1, hub.GroupSize(wstypes.GroupAll))
	assert.Equal(t, 0, hub.GroupSize("user_5"))
}

func TestPerMemberOrdering(t *testing.T) {
	hub := NewHub(zap.NewNop())

	m := newFakeMember("m")
	hub.Join(m, "user_1")

	for i := 0; i < 50; i++ {
		hub.Publish("user_1", mustEvent(t, wstypes.KindAnnouncement, fmt.Sprintf("event-%d", i)))
	}

	got := m.received()
	require.Len(t, got, 50)
	for i, evt := range got {
		assert.Equal(t, fmt.Sprintf("event-%d", i), evt.Message)
	}
}

func TestConcurrentJoinLeavePublish(t *testing.T) {
	hub := NewHub(zap.NewNop())

	const workers = 100
	var wg sync.WaitGroup

	ping := mustEvent(t, wstypes.KindAnnouncement, "ping")
	stay := make([]*fakeMember, 0, workers/2)
	for i := 0; i < workers; i++ {
		m := newFakeMember(fmt.Sprintf("m-%d", i))
		leaves := i%2 == 1
		if !leaves {
			stay = append(stay, m)
		}

		wg.Add(1)
		go func(m *fakeMember, leaves bool) {
			defer wg.Done()
			hub.Join(m, "crowd")
			hub.Publish("crowd", ping)
			if leaves {
				hub.Leave(m, "crowd")
			}
		}(m, leaves)
	}
	wg.Wait()

	// net joins minus leaves, no lost updates
	assert.Equal(t, len(stay), hub.GroupSize("crowd"))

	hub.Publish("crowd", mustEvent(t, wstypes.KindAnnouncement, "final"))
	for _, m := range stay {
		got := m.received()
		require.NotEmpty(t, got)
		assert.Equal(t, "final", got[len(got)-1].Message)
	}
}

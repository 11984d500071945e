package scanner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"notifyme-service/internal/domain/notification"
	"notifyme-service/internal/domain/subscription"
	"notifyme-service/internal/domain/user"
	xerrors "notifyme-service/internal/pkg/errors"
	"notifyme-service/internal/service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	subs    []subscription.Subscription
	users   map[int64]*user.User
	listErr error
}

func (s *fakeStore) ListExpiring(_ context.Context, from, to time.Time) ([]subscription.Subscription, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []subscription.Subscription
	for _, sub := range s.subs {
		if sub.EndDate.After(from) && !sub.EndDate.After(to) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeStore) FindUser(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	requests []*notification.CreateNotificationRequest
	failOn   string // recipient email that should fail
}

func (n *fakeNotifier) CreateAndPush(_ context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	if n.failOn != "" && req.Recipient == n.failOn {
		return nil, errors.New("delivery failed")
	}
	n.requests = append(n.requests, req)
	return &notification.Notification{ID: int64(len(n.requests))}, nil
}

type fakeLease struct {
	held map[string]bool
}

func (l *fakeLease) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

var scanTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newScanner(store *fakeStore, notifier *fakeNotifier, lease Lease) *Scanner {
	s := New(store, notifier, catalog.New(), lease, 24*time.Hour, 7*24*time.Hour, zap.NewNop())
	s.now = func() time.Time { return scanTime }
	return s
}

func sub(id, userID int64, planName string, endsIn time.Duration) subscription.Subscription {
	return subscription.Subscription{
		ID:       id,
		UserID:   userID,
		PlanID:   1,
		PlanName: planName,
		EndDate:  scanTime.Add(endsIn),
	}
}

func TestScanWindowFiltering(t *testing.T) {
	store := &fakeStore{
		subs: []subscription.Subscription{
			sub(1, 1, "BASIC", -24*time.Hour),     // already expired
			sub(2, 2, "BASIC", 5*24*time.Hour),    // inside window
			sub(3, 3, "REGULAR", 7*24*time.Hour),  // boundary, still inside
			sub(4, 4, "PREMIUM", 8*24*time.Hour),  // beyond window
			sub(5, 5, "STANDARD", 30*24*time.Hour),
		},
		users: map[int64]*user.User{
			2: {ID: 2, Email: "two@example.com"},
			3: {ID: 3, Email: "three@example.com"},
		},
	}
	notifier := &fakeNotifier{}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.requests, 2)
	assert.Equal(t, "user_2", notifier.requests[0].TargetGroup)
	assert.Equal(t, "user_3", notifier.requests[1].TargetGroup)
}

func TestExpiryWarningContent(t *testing.T) {
	// Basic plan, started 25 days ago, 5 days left.
	started := scanTime.Add(-25 * 24 * time.Hour)
	s := subscription.Subscription{
		ID:        7,
		UserID:    42,
		PlanID:    1,
		PlanName:  "BASIC",
		StartDate: started,
		EndDate:   started.AddDate(0, 0, 30),
	}

	store := &fakeStore{
		subs:  []subscription.Subscription{s},
		users: map[int64]*user.User{42: {ID: 42, Email: "forty2@example.com"}},
	}
	notifier := &fakeNotifier{}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.requests, 1)
	req := notifier.requests[0]
	assert.Equal(t, "user_42", req.TargetGroup)
	assert.Equal(t, "forty2@example.com", req.Recipient)
	assert.Equal(t, notification.TypePlanUpdate, req.Type)
	assert.Equal(t, []string{"BASIC", "REGULAR", "STANDARD", "PREMIUM"}, req.RecommendedPlans)

	assert.Contains(t, req.Message, "5 days")
	for _, tier := range []string{"BASIC", "REGULAR", "STANDARD", "PREMIUM"} {
		assert.Contains(t, req.Message, tier)
	}
}

func TestUnknownPlanIsSkippedOthersContinue(t *testing.T) {
	store := &fakeStore{
		subs: []subscription.Subscription{
			sub(1, 1, "GOLD", 2*24*time.Hour),
			sub(2, 2, "BASIC", 3*24*time.Hour),
		},
		users: map[int64]*user.User{
			1: {ID: 1, Email: "one@example.com"},
			2: {ID: 2, Email: "two@example.com"},
		},
	}
	notifier := &fakeNotifier{}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, "user_2", notifier.requests[0].TargetGroup)
}

func TestNotifierFailureIsIsolated(t *testing.T) {
	store := &fakeStore{
		subs: []subscription.Subscription{
			sub(1, 1, "BASIC", 2*24*time.Hour),
			sub(2, 2, "BASIC", 3*24*time.Hour),
		},
		users: map[int64]*user.User{
			1: {ID: 1, Email: "broken@example.com"},
			2: {ID: 2, Email: "two@example.com"},
		},
	}
	notifier := &fakeNotifier{failOn: "broken@example.com"}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, "user_2", notifier.requests[0].TargetGroup)
}

func TestStoreFailureAbortsCycle(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	notifier := &fakeNotifier{}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrStoreUnavailable)
	assert.Empty(t, notifier.requests)
}

func TestLeaseDeduplicatesAcrossCycles(t *testing.T) {
	store := &fakeStore{
		subs:  []subscription.Subscription{sub(1, 1, "BASIC", 5*24*time.Hour)},
		users: map[int64]*user.User{1: {ID: 1, Email: "one@example.com"}},
	}
	notifier := &fakeNotifier{}
	s := newScanner(store, notifier, &fakeLease{})

	require.NoError(t, s.ScanOnce(context.Background()))
	require.NoError(t, s.ScanOnce(context.Background()))

	assert.Len(t, notifier.requests, 1)
}

func TestWithoutLeaseEveryCycleWarnsAgain(t *testing.T) {
	store := &fakeStore{
		subs:  []subscription.Subscription{sub(1, 1, "BASIC", 5*24*time.Hour)},
		users: map[int64]*user.User{1: {ID: 1, Email: "one@example.com"}},
	}
	notifier := &fakeNotifier{}
	s := newScanner(store, notifier, nil)

	require.NoError(t, s.ScanOnce(context.Background()))
	require.NoError(t, s.ScanOnce(context.Background()))

	assert.Len(t, notifier.requests, 2)
}

func TestScanProducesNoDuplicateWithinCycle(t *testing.T) {
	store := &fakeStore{
		subs:  []subscription.Subscription{sub(9, 9, "STANDARD", 6*24*time.Hour)},
		users: map[int64]*user.User{9: {ID: 9, Email: "nine@example.com"}},
	}
	notifier := &fakeNotifier{}

	err := newScanner(store, notifier, nil).ScanOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, fmt.Sprintf("user_%d", 9), notifier.requests[0].TargetGroup)
}

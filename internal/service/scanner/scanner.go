// internal/service/scanner/scanner.go
package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notifyme-service/internal/domain/notification"
	"notifyme-service/internal/domain/subscription"
	"notifyme-service/internal/domain/user"
	wstypes "notifyme-service/internal/domain/websocket"
	xerrors "notifyme-service/internal/pkg/errors"
	"notifyme-service/internal/service/catalog"

	"go.uber.org/zap"
)

// perSubscriptionTimeout bounds one subscription's notification attempt so a
// stuck delivery cannot delay the rest of the scan.
const perSubscriptionTimeout = 5 * time.Second

// Store is the read side the scanner depends on.
type Store interface {
	ListExpiring(ctx context.Context, from, to time.Time) ([]subscription.Subscription, error)
	FindUser(ctx context.Context, id int64) (*user.User, error)
}

// Notifier persists a notification record and pushes it to the live layer.
type Notifier interface {
	CreateAndPush(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
}

// Lease grants at most one holder per key until the TTL runs out. Used to
// warn each subscription once per expiry instead of once per scan cycle.
type Lease interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Scanner periodically looks for subscriptions whose end date falls inside
// the warning window and emits one expiry warning for each.
type Scanner struct {
	store    Store
	notifier Notifier
	catalog  *catalog.Catalog
	lease    Lease // nil disables dedup: every cycle re-warns
	logger   *zap.Logger

	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

func New(store Store, notifier Notifier, cat *catalog.Catalog, lease Lease, interval, window time.Duration, logger *zap.Logger) *Scanner {
	return &Scanner{
		store:    store,
		notifier: notifier,
		catalog:  cat,
		lease:    lease,
		logger:   logger,
		interval: interval,
		window:   window,
		now:      time.Now,
	}
}

// Run scans on a fixed cadence until the context is cancelled. A failed
// cycle is logged and retried on the next tick; missed cycles simply re-scan.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("expiry scanner started",
		zap.Duration("interval", s.interval),
		zap.Duration("warning_window", s.window),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry scanner stopped")
			return
		case <-ticker.C:
			if err := s.ScanOnce(ctx); err != nil {
				s.logger.Error("expiry scan cycle failed", zap.Error(err))
			}
		}
	}
}

// ScanOnce runs a single scan cycle. Only a store listing failure aborts the
// cycle; anything that goes wrong for a single subscription is logged and
// the scan moves on.
func (s *Scanner) ScanOnce(ctx context.Context) error {
	now := s.now()

	subs, err := s.store.ListExpiring(ctx, now, now.Add(s.window))
	if err != nil {
		return xerrors.Wrap(xerrors.ErrStoreUnavailable, err.Error())
	}

	warned := 0
	for _, sub := range subs {
		if err := s.notifyExpiring(ctx, sub, now); err != nil {
			s.logger.Error("failed to send expiry warning",
				zap.Int64("subscription_id", sub.ID),
				zap.Int64("user_id", sub.UserID),
				zap.Error(err),
			)
			continue
		}
		warned++
	}

	s.logger.Info("expiry scan cycle complete",
		zap.Int("expiring", len(subs)),
		zap.Int("warned", warned),
	)
	return nil
}

func (s *Scanner) notifyExpiring(ctx context.Context, sub subscription.Subscription, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, perSubscriptionTimeout)
	defer cancel()

	if s.lease != nil {
		ok, err := s.acquireLease(ctx, sub, now)
		if err != nil {
			return fmt.Errorf("lease check failed: %w", err)
		}
		if !ok {
			return nil // already warned for this expiry
		}
	}

	recommended, err := s.catalog.Recommendations(sub.PlanName)
	if err != nil {
		return err
	}

	u, err := s.store.FindUser(ctx, sub.UserID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	daysLeft := int(sub.EndDate.Sub(now).Hours() / 24)
	message := fmt.Sprintf("Your %s subscription expires in %d days. Plans to consider: %s",
		sub.PlanName, daysLeft, strings.Join(recommended, ", "))

	_, err = s.notifier.CreateAndPush(ctx, &notification.CreateNotificationRequest{
		Title:            "Subscription expiring",
		Message:          message,
		Recipient:        u.Email,
		Type:             notification.TypePlanUpdate,
		RecommendedPlans: recommended,
		TargetGroup:      wstypes.UserGroup(sub.UserID),
		RecipientUserID:  sub.UserID,
	})
	return err
}

func (s *Scanner) acquireLease(ctx context.Context, sub subscription.Subscription, now time.Time) (bool, error) {
	key := fmt.Sprintf("expiry_warned:%d:%d", sub.ID, sub.EndDate.Unix())
	// Hold until the subscription actually expires; after that the key is
	// irrelevant anyway.
	ttl := sub.EndDate.Sub(now)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.lease.Acquire(ctx, key, ttl)
}

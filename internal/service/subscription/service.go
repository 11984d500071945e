// internal/service/subscription/service.go
package subscription

import (
	"context"
	"fmt"
	"time"

	"notifyme-service/internal/domain/plan"
	"notifyme-service/internal/domain/subscription"
	"notifyme-service/internal/service/catalog"

	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, sub *subscription.Subscription) error
	FindByID(ctx context.Context, id int64) (*subscription.Subscription, error)
	List(ctx context.Context) ([]subscription.Subscription, error)
	Delete(ctx context.Context, id int64) error
}

type PlanStore interface {
	FindByID(ctx context.Context, id int64) (*plan.SubscriptionPlan, error)
}

type SubscriptionService struct {
	store   Store
	plans   PlanStore
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewSubscriptionService(store Store, plans PlanStore, cat *catalog.Catalog, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		store:   store,
		plans:   plans,
		catalog: cat,
		logger:  logger,
	}
}

// Create stores a new subscription. The end date is always derived from the
// plan's duration; callers cannot set it.
func (s *SubscriptionService) Create(ctx context.Context, req *subscription.CreateSubscriptionRequest) (*subscription.Subscription, error) {
	p, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	end, err := s.catalog.EndDate(p.Name, start)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		UserID:    req.UserID,
		PlanID:    p.ID,
		PlanName:  p.Name,
		StartDate: start,
		EndDate:   end,
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.logger.Info("subscription created",
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("user_id", sub.UserID),
		zap.String("plan", sub.PlanName),
		zap.Time("end_date", sub.EndDate),
	)

	return sub, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id int64) (*subscription.Subscription, error) {
	return s.store.FindByID(ctx, id)
}

func (s *SubscriptionService) List(ctx context.Context) ([]subscription.Subscription, error) {
	return s.store.List(ctx)
}

func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

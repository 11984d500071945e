// internal/service/plan/service.go
package plan

import (
	"context"
	"fmt"

	"notifyme-service/internal/domain/plan"
	wstypes "notifyme-service/internal/domain/websocket"
	"notifyme-service/internal/service/catalog"

	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, p *plan.SubscriptionPlan) error
	FindByID(ctx context.Context, id int64) (*plan.SubscriptionPlan, error)
	List(ctx context.Context) ([]plan.SubscriptionPlan, error)
}

type Publisher interface {
	Publish(group string, evt *wstypes.Event)
}

// PlanService manages the plan rows backing the fixed catalog. Creation only
// accepts the catalog's tier names; rank and duration always come from the
// catalog, never from the caller.
type PlanService struct {
	store     Store
	catalog   *catalog.Catalog
	publisher Publisher
	logger    *zap.Logger
}

func NewPlanService(store Store, cat *catalog.Catalog, publisher Publisher, logger *zap.Logger) *PlanService {
	return &PlanService{
		store:     store,
		catalog:   cat,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *PlanService) Create(ctx context.Context, req *plan.CreatePlanRequest) (*plan.SubscriptionPlan, error) {
	rank, err := s.catalog.Rank(req.Name)
	if err != nil {
		return nil, err
	}
	duration, err := s.catalog.DurationDays(req.Name)
	if err != nil {
		return nil, err
	}

	p := &plan.SubscriptionPlan{
		Name:         req.Name,
		Rank:         rank,
		DurationDays: duration,
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.logger.Info("subscription plan created", zap.Int64("plan_id", p.ID), zap.String("name", p.Name))

	if evt, err := wstypes.NewEvent(wstypes.KindPlanAdded, fmt.Sprintf("New plan available: %s", p.Name), ""); err == nil {
		s.publisher.Publish(wstypes.GroupAll, evt)
	}

	return p, nil
}

func (s *PlanService) Get(ctx context.Context, id int64) (*plan.SubscriptionPlan, error) {
	return s.store.FindByID(ctx, id)
}

func (s *PlanService) List(ctx context.Context) ([]plan.SubscriptionPlan, error) {
	return s.store.List(ctx)
}

// internal/service/user/service.go
package user

import (
	"context"
	"fmt"

	"notifyme-service/internal/domain/user"
	wstypes "notifyme-service/internal/domain/websocket"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Store interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Delete(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(group string, evt *wstypes.Event)
}

type UserService struct {
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func NewUserService(store Store, publisher Publisher, logger *zap.Logger) *UserService {
	return &UserService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new user and announces it to connected clients. The
// announcement is an explicit call after the write succeeds, never a side
// effect of the write itself.
func (s *UserService) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	if err := s.store.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.Int64("user_id", u.ID), zap.String("email", u.Email))

	if evt, err := wstypes.NewEvent(wstypes.KindUserAdded, fmt.Sprintf("%s just joined", u.FirstName), ""); err == nil {
		s.publisher.Publish(wstypes.GroupAll, evt)
	}

	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*user.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.store.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

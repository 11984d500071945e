// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"time"

	"notifyme-service/internal/config"
	"notifyme-service/internal/db"
	notifyHandler "notifyme-service/internal/handlers/notification"
	planHandler "notifyme-service/internal/handlers/plan"
	scanHandler "notifyme-service/internal/handlers/scan"
	subscriptionHandler "notifyme-service/internal/handlers/subscription"
	userHandler "notifyme-service/internal/handlers/user"
	wsHandler "notifyme-service/internal/handlers/websocket"
	"notifyme-service/internal/middleware"
	"notifyme-service/internal/pkg/token"
	"notifyme-service/internal/repository/postgres"
	"notifyme-service/internal/service/catalog"
	notifyService "notifyme-service/internal/service/notification"
	planService "notifyme-service/internal/service/plan"
	"notifyme-service/internal/service/scanner"
	subscriptionService "notifyme-service/internal/service/subscription"
	userService "notifyme-service/internal/service/user"
	"notifyme-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool   *pgxpool.Pool
	hub    *websocket.Hub
	cancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.NewPostgresPool(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	// ----- Redis (optional, backs the expiry-warning lease) -----
	var lease scanner.Lease
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		lease = scanner.NewRedisLease(redisClient)
		logger.Info("expiry-warning lease enabled", zap.String("redis_addr", s.cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, expiry warnings repeat every scan cycle")
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewSubscriptionPlanRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	// ----- Websocket hub -----
	hub := websocket.NewHub(logger)
	s.hub = hub

	// ----- Plan catalog -----
	cat := catalog.New()

	// ----- Services -----
	tokens := token.NewManager(s.cfg.TokenSecret, 720*time.Hour)
	notifService := notifyService.NewNotificationService(notificationRepo, hub, logger)
	usrService := userService.NewUserService(userRepo, hub, logger)
	plnService := planService.NewPlanService(planRepo, cat, hub, logger)
	subService := subscriptionService.NewSubscriptionService(subscriptionRepo, planRepo, cat, logger)

	// ----- Expiry scanner -----
	expiryScanner := scanner.New(
		subscriptionRepo,
		notifService,
		cat,
		lease,
		s.cfg.ScanInterval(),
		s.cfg.WarningWindow(),
		logger,
	)
	go expiryScanner.Run(ctx)

	// ----- Handlers -----
	handlers := &Handlers{
		UserHandler:         userHandler.NewUserHandler(usrService),
		PlanHandler:         planHandler.NewPlanHandler(plnService),
		SubscriptionHandler: subscriptionHandler.NewSubscriptionHandler(subService),
		NotifHandler:        notifyHandler.NewNotificationHandler(notifService),
		ScanHandler:         scanHandler.NewScanHandler(expiryScanner),
		WSHandler:           wsHandler.NewWebSocketHandler(hub, tokens, logger),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the scanner, disconnects websocket clients and releases the
// database pool.
func (s *Server) Shutdown(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
	}
	if s.hub != nil {
		s.hub.Shutdown()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.logger != nil {
		s.logger.Info("server stopped")
		s.logger.Sync()
	}
}

// internal/app/router.go
package app

import (
	notifyHandler "notifyme-service/internal/handlers/notification"
	planHandler "notifyme-service/internal/handlers/plan"
	scanHandler "notifyme-service/internal/handlers/scan"
	subscriptionHandler "notifyme-service/internal/handlers/subscription"
	userHandler "notifyme-service/internal/handlers/user"
	wsHandler "notifyme-service/internal/handlers/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	UserHandler         *userHandler.UserHandler
	PlanHandler         *planHandler.PlanHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	NotifHandler        *notifyHandler.NotificationHandler
	ScanHandler         *scanHandler.ScanHandler
	WSHandler           *wsHandler.WebSocketHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws/notifications", h.WSHandler.HandleConnection)

	// ==================== Users ====================
	users := api.Group("/users")
	{
		users.POST("", h.UserHandler.CreateUser)
		users.GET("", h.UserHandler.ListUsers)
		users.GET("/:id", h.UserHandler.GetUser)
		users.DELETE("/:id", h.UserHandler.DeleteUser)
	}

	// ==================== Subscription Plans ====================
	plans := api.Group("/plans")
	{
		plans.POST("", h.PlanHandler.CreatePlan)
		plans.GET("", h.PlanHandler.ListPlans)
		plans.GET("/:id", h.PlanHandler.GetPlan)
	}

	// ==================== Subscriptions ====================
	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("", h.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", h.SubscriptionHandler.ListSubscriptions)
		subscriptions.GET("/:id", h.SubscriptionHandler.GetSubscription)
		subscriptions.DELETE("/:id", h.SubscriptionHandler.DeleteSubscription)
	}

	// ==================== Notifications ====================
	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.NotifHandler.ListNotifications)
		notifications.POST("", h.NotifHandler.CreateNotification)
		notifications.POST("/maintenance-alert", h.NotifHandler.BroadcastMaintenanceAlert)
		notifications.DELETE("/:id", h.NotifHandler.DeleteNotification)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	{
		admin.POST("/scan/run", h.ScanHandler.RunScan)
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}

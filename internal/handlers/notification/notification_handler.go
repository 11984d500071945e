// internal/handlers/notification/notification_handler.go
package notification

import (
	"net/http"
	"strconv"

	"notifyme-service/internal/domain/notification"
	"notifyme-service/internal/pkg/response"
	service "notifyme-service/internal/service/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the latest notification records.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	notifications, err := h.notificationService.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list notifications", err)
		return
	}

	response.Success(c, http.StatusOK, "notifications retrieved", gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// CreateNotification persists a notification and pushes it to its target
// group.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req notification.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	n, err := h.notificationService.CreateAndPush(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create notification", err)
		return
	}

	response.Success(c, http.StatusCreated, "notification created", n)
}

// BroadcastMaintenanceAlert pushes a maintenance alert to every connected
// client.
func (h *NotificationHandler) BroadcastMaintenanceAlert(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	n, err := h.notificationService.BroadcastMaintenanceAlert(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to broadcast alert", err)
		return
	}

	response.Success(c, http.StatusCreated, "maintenance alert broadcast", n)
}

// DeleteNotification removes a notification record.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid notification ID", err)
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusNotFound, "notification not found", err)
		return
	}

	response.Success(c, http.StatusOK, "notification deleted", nil)
}

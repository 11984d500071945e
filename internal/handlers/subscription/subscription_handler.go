// internal/handlers/subscription/subscription_handler.go
package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"notifyme-service/internal/domain/subscription"
	xerrors "notifyme-service/internal/pkg/errors"
	"notifyme-service/internal/pkg/response"
	service "notifyme-service/internal/service/subscription"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req subscription.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	sub, err := h.subscriptionService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnknownPlan) || errors.Is(err, xerrors.ErrNotFound) {
			response.ValidationError(c, "invalid plan", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create subscription", err)
		return
	}

	response.Success(c, http.StatusCreated, "subscription created", sub)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid subscription ID", err)
		return
	}

	sub, err := h.subscriptionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "subscription not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription retrieved", sub)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.subscriptionService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list subscriptions", err)
		return
	}

	response.Success(c, http.StatusOK, "subscriptions retrieved", gin.H{
		"subscriptions": subs,
		"count":         len(subs),
	})
}

func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid subscription ID", err)
		return
	}

	if err := h.subscriptionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "subscription not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription deleted", nil)
}

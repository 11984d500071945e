// internal/handlers/plan/plan_handler.go
package plan

import (
	"errors"
	"net/http"
	"strconv"

	"notifyme-service/internal/domain/plan"
	xerrors "notifyme-service/internal/pkg/errors"
	"notifyme-service/internal/pkg/response"
	service "notifyme-service/internal/service/plan"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	p, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnknownPlan) {
			response.ValidationError(c, "unknown plan tier", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create plan", err)
		return
	}

	response.Success(c, http.StatusCreated, "plan created", p)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid plan ID", err)
		return
	}

	p, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "plan not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan retrieved", p)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", gin.H{
		"plans": plans,
		"count": len(plans),
	})
}

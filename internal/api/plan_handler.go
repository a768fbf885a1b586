package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/models"
)

// PlanHandler serves generated plans.
type PlanHandler struct {
	planner core.PlannerService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planner core.PlannerService) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// GetPlan handles GET /plan — the session's last generated plan.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	plan := session.Plan()
	if plan == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrNoPlan.Error()})
		return
	}
	c.JSON(http.StatusOK, NewPlanView(plan))
}

// GeneratePlan handles POST /plan/generate — a stateless generation that
// bypasses the session workflow entirely: no loading choreography, no view
// change, nothing stored. Useful for API consumers and for smoke-testing the
// provider wiring.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req models.SubmitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	profile := req.ToProfile()
	if err := profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile", Details: err.Error()})
		return
	}

	plan := h.planner.Generate(c.Request.Context(), profile)
	c.JSON(http.StatusOK, NewPlanView(plan))
}

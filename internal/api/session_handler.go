package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/middleware"
	"nutrigo-backend-go/internal/models"
)

// SessionHandler handles the session-scoped view workflow endpoints.
type SessionHandler struct {
	logger *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{logger: logger}
}

// sessionFromContext pulls the session installed by the session middleware.
// A missing session means the middleware is not wired on this route, which is
// a setup error, reported as a 500.
func sessionFromContext(c *gin.Context) (*core.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Session not resolved for this request"})
		return nil, false
	}
	return session, true
}

// sessionState builds the render response for a session.
func sessionState(session *core.Session) SessionStateResponse {
	step, message := session.LoadingStep()
	loading := session.IsLoading()
	if !loading {
		message = ""
	}
	return SessionStateResponse{
		SessionID:      session.ID(),
		View:           string(session.Render()),
		Loading:        loading,
		LoadingStep:    step,
		LoadingMessage: message,
		HasPlan:        session.Plan() != nil,
	}
}

// GetState handles GET /session
func (h *SessionHandler) GetState(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionState(session))
}

// StartOnboarding handles POST /session/start
func (h *SessionHandler) StartOnboarding(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	session.StartOnboarding()
	c.JSON(http.StatusOK, sessionState(session))
}

// SubmitProfile handles POST /session/profile
//
// This call blocks for at least the configured minimum loading duration; the
// response carries both the new session state and the decorated plan. While a
// submission is in flight for the same session, concurrent submissions are
// rejected with 409.
func (h *SessionHandler) SubmitProfile(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

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

	plan, err := session.SubmitProfile(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrGenerationInFlight):
			c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrGenerationInFlight.Error()})
		case errors.Is(err, core.ErrGenerationInterrupted):
			// The client went away or the session was torn down mid-flight;
			// 499-style situations are reported as a client-closed 400 here.
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrGenerationInterrupted.Error(), Details: err.Error()})
		default:
			h.logger.Error("profile submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Plan generated",
		Data: gin.H{
			"state": sessionState(session),
			"plan":  NewPlanView(plan),
		},
	})
}

// PlaceOrder handles POST /session/order
func (h *SessionHandler) PlaceOrder(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if session.Plan() == nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrNoPlan.Error()})
		return
	}
	message := session.PlaceOrder()
	c.JSON(http.StatusOK, SuccessResponse{
		Message: message,
		Data:    gin.H{"state": sessionState(session)},
	})
}

// Navigate handles POST /session/navigate
func (h *SessionHandler) Navigate(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	view := models.ViewState(req.View)
	if !view.IsNavigable() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown view", Details: req.View})
		return
	}

	session.Navigate(view)
	c.JSON(http.StatusOK, sessionState(session))
}

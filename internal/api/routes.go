package api

import (
	"net/http" // For http.StatusOK in health check

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nutrigo-backend-go/internal/config"
	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// `router` instance *before* this function is called, typically in `main.go`.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	sessionStore *core.SessionStore,
	planner core.PlannerService,
	catalog core.CatalogService,
) {
	// --- Initialize Middleware requiring dependencies ---
	if sessionStore == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: SessionStore is not initialized; session routes cannot be set up.")
		panic("SessionStore is nil during route setup")
	}
	sessionMW := middleware.NewSessionMiddleware(sessionStore)

	// --- Initialize Handlers ---
	sessionHandler := NewSessionHandler(logger)
	planHandler := NewPlanHandler(planner)
	catalogHandler := NewCatalogHandler(catalog)

	// --- Define API Route Groups ---
	// Base group for API version 1. Every route under it is session-scoped:
	// the middleware resolves (or mints) the caller's session up front.
	apiV1 := router.Group("/api/v1", sessionMW.Resolve())
	{
		// --- Session / View Workflow Endpoints ---
		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", sessionHandler.GetState)
			sessionGroup.POST("/start", sessionHandler.StartOnboarding)
			sessionGroup.POST("/profile", sessionHandler.SubmitProfile)
			sessionGroup.POST("/order", sessionHandler.PlaceOrder)
			sessionGroup.POST("/navigate", sessionHandler.Navigate)
		}

		// --- Plan Endpoints ---
		planGroup := apiV1.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			// Stateless generation; does not touch the session's view or plan.
			planGroup.POST("/generate", planHandler.GeneratePlan)
		}

		// --- Catalog Endpoints ---
		menuGroup := apiV1.Group("/menu")
		{
			menuGroup.GET("", catalogHandler.ListMenu)
			menuGroup.POST("/:id/add", catalogHandler.AddMenuItem)
		}
		membershipGroup := apiV1.Group("/memberships")
		{
			membershipGroup.GET("", catalogHandler.ListMemberships)
			membershipGroup.POST("/select", catalogHandler.SelectMembership)
		}
	}

	// --- General Health Check Endpoint ---
	// This endpoint is public and does not go under the /api/v1 group.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "NutriGo backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}

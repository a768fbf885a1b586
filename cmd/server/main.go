package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nutrigo-backend-go/internal/api"
	"nutrigo-backend-go/internal/config"
	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/gemini"
	"nutrigo-backend-go/internal/middleware"
)

func main() {
	// --- 1. Load .env (best-effort) ---
	// A .env file is a local development convenience; in deployment the
	// environment is set by the platform, so a missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded (%v); relying on process environment.", err)
	}

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 3. Initialize Logger (Zap) ---
	// Development logger for human-readable output; production logger (JSON)
	// when Gin runs in release mode.
	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.GinMode) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync() // Flushes buffer, if any.
	zapLogger.Info("Zap logger initialized successfully.")
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 4. Initialize Gemini Client ---
	// An empty API key is allowed: the first generation call will fail and
	// the planner serves its fallback plan, so the app stays usable.
	if appConfig.GeminiAPIKey == "" {
		zapLogger.Warn("GEMINI_API_KEY is not set; plan generation will always serve the fallback plan.")
	}
	geminiClient := gemini.NewClient(appConfig.GeminiAPIKey, appConfig.GeminiBaseURL, appConfig.GeminiModel, zapLogger)
	zapLogger.Info("Gemini client initialized.", zap.String("model", appConfig.GeminiModel))

	// --- 5. Initialize Core Services ---
	plannerService := core.NewPlannerService(geminiClient, zapLogger)

	sessionStore := core.NewSessionStore(plannerService, zapLogger, core.SessionStoreOptions{
		MinLoading: appConfig.MinLoading(),
		IdleTTL:    appConfig.SessionTTL(),
	})
	defer sessionStore.Close()

	catalogService := core.NewCatalogService(core.DefaultAddedTTL)
	defer catalogService.Close()
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
		zapLogger.Info("Gin mode set to 'release'.")
	} else {
		gin.SetMode(gin.DebugMode) // Default or "debug"
		zapLogger.Info("Gin mode set to 'debug'.")
	}
	// gin.New() for control over the middleware stack (no default logger).
	router := gin.New()
	zapLogger.Info("Gin engine created.")

	// --- 7. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))      // Log every request; should be early.
	router.Use(middleware.RecoveryMiddleware(zapLogger)) // Recover from panics; after logger, before other handlers.

	// Apply CORS middleware only if ClientURL is configured, otherwise log a warning.
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 8. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		sessionStore,
		plannerService,
		catalogService,
	)
	// SetupRoutes logs its own success message.

	// --- 9. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	// Goroutine for starting the server, so it doesn't block graceful shutdown logic.
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 10. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received on the quitChannel.
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Give active connections time to finish before the server is forced to close.
	// In-flight profile submissions hold their connection for the minimum
	// loading duration, so the timeout must comfortably exceed it.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}

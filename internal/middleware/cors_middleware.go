package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nutrigo-backend-go/internal/config" // To get CLIENT_URL for AllowOrigins
)

// CORSMiddleware configures Cross-Origin Resource Sharing (CORS) for the
// application. It allows requests from the CLIENT_URL specified in the
// application configuration and defines common HTTP methods and headers.
//
// CLIENT_URL must be set before this middleware is installed; main skips
// CORS entirely (with a warning) when no client origin is configured.
func CORSMiddleware(appConfig *config.Config) gin.HandlerFunc {
	if appConfig == nil || appConfig.ClientURL == "" {
		panic("ClientURL for CORS is not configured")
	}

	return cors.New(cors.Config{
		// For multiple origins, CLIENT_URL could be a comma-separated list
		// parsed here; a single origin covers the current deployment.
		AllowOrigins: []string{appConfig.ClientURL},

		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},

		// The session header has to be allowed both ways: clients send it to
		// resume a session and read it back to learn a newly minted one.
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", SessionHeader},
		ExposeHeaders: []string{"Content-Length", SessionHeader},

		AllowCredentials: true,

		// How long a preflight response may be cached.
		MaxAge: 12 * time.Hour,
	})
}

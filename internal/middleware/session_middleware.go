package middleware

import (
	"github.com/gin-gonic/gin"

	"nutrigo-backend-go/internal/core"
	// To avoid potential import cycles with internal/api, ErrorResponse is defined locally.
)

// SessionHeader carries the session identifier on requests and responses.
// Clients send it to resume an existing session; the server always echoes the
// effective session ID so first-time callers learn theirs.
const SessionHeader = "X-Session-Id"

// SessionContextKey is the gin context key under which the resolved
// *core.Session is stored for downstream handlers.
const SessionContextKey = "session"

// ErrorResponse is a local definition for sending standardized error messages.
// It mirrors the one in internal/api/dto_models.go to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionMiddleware resolves the caller's session on every request.
type SessionMiddleware struct {
	store *core.SessionStore
}

// NewSessionMiddleware creates a new SessionMiddleware instance.
// It panics if the store is nil, as this is a critical setup dependency.
func NewSessionMiddleware(store *core.SessionStore) *SessionMiddleware {
	if store == nil {
		// A nil store is a programmer error during setup; the application
		// cannot serve any session-scoped route without it.
		panic("SessionStore is not initialized for SessionMiddleware")
	}
	return &SessionMiddleware{store: store}
}

// Resolve is a Gin middleware handler that looks up the session named by the
// X-Session-Id header, creating a fresh one when the header is absent or the
// session has expired. The effective session is set in the Gin context and
// its ID is echoed on the response.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestedID := c.GetHeader(SessionHeader)

		// An unknown (expired or malformed) ID degrades to a fresh session
		// rather than an error: the client simply starts over at the home
		// view, mirroring a page reload.
		session := m.store.GetOrCreate(requestedID)

		c.Set(SessionContextKey, session)
		c.Writer.Header().Set(SessionHeader, session.ID())

		c.Next()
	}
}

// SessionFromContext retrieves the session placed in the Gin context by
// Resolve. The boolean is false if the middleware did not run.
func SessionFromContext(c *gin.Context) (*core.Session, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*core.Session)
	return session, ok
}

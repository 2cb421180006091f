package middleware

import (
	"net/http"
	"strings"

	"github.com/epeers/scenarios/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	SessionHeader = "X-Session-ID"
	SessionIDKey  = "session_id"
)

// ExtractSession copies the X-Session-ID header into the gin context when present
func ExtractSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID != "" {
			c.Set(SessionIDKey, sessionID)
		}
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}

// RequireSession rejects requests that carry no session header.
// Whether the session is still live is decided by the store.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetSessionID(c); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "session_required",
				Message: SessionHeader + " header is required",
			})
			return
		}
		c.Next()
	}
}

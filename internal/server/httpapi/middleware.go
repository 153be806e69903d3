package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avlasov/chatauth/internal/common"
	"github.com/avlasov/chatauth/internal/logging"
	"github.com/avlasov/chatauth/internal/server/auth"
	"github.com/avlasov/chatauth/internal/server/users"
)

// ContextUserKey is the gin context key under which RequireAuth stores the
// resolved user.
const ContextUserKey = "auth.user"

// RequireAuth verifies the session cookie, resolves its user against the
// store, and attaches the user to the request context. Requests without a
// valid session never reach the protected handlers.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
			return
		}

		userID, err := h.users.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidToken})
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
				return
			}
			h.logger.Error(c.Request.Context(), "resolving session user failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *users.User {
	return c.MustGet(ContextUserKey).(*users.User)
}

// requestLogger emits one structured log line per request.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

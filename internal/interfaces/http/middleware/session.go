// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/pkg/session"
)

const (
	tokenKey     = "access_token"
	sessionIDKey = "session_id"
	userIDKey    = "user_id"
)

// Session resolves the browser cookie to a backend token. A missing or
// broken session never blocks the request: the caller just proceeds
// unauthenticated and the facade applies its own preconditions. When the
// access token is expired and a refresh token exists, the pair is refreshed
// and persisted before the handler runs.
func Session(mgr *session.Manager, authSvc *auth.Service, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(mgr.CookieName())
		if err != nil || id == "" {
			c.Next()
			return
		}

		data, err := mgr.Get(c.Request.Context(), id)
		if err != nil {
			log.WithError(err).Warn("session lookup failed")
			c.Next()
			return
		}
		if data == nil {
			c.Next()
			return
		}

		if session.TokenExpired(data.AccessToken) && data.RefreshToken != "" {
			fresh, err := authSvc.Refresh(c.Request.Context(), data.RefreshToken)
			if err != nil {
				log.WithError(err).Info("session refresh failed, caller proceeds unauthenticated")
				_ = mgr.Destroy(c.Request.Context(), id)
				c.Next()
				return
			}
			data.AccessToken = fresh.AccessToken
			if fresh.RefreshToken != "" {
				data.RefreshToken = fresh.RefreshToken
			}
			if err := mgr.Update(c.Request.Context(), id, *data); err != nil {
				log.WithError(err).Warn("session update after refresh failed")
			}
		}

		c.Set(tokenKey, data.AccessToken)
		c.Set(sessionIDKey, id)
		c.Set(userIDKey, data.UserID)

		c.Next()
	}
}

// GetToken extracts the backend access token from gin context. Empty means
// the caller is not authenticated.
func GetToken(c *gin.Context) string {
	value, exists := c.Get(tokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

// GetSessionID extracts the browser session id from gin context
func GetSessionID(c *gin.Context) string {
	value, exists := c.Get(sessionIDKey)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}

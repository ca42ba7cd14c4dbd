package auth

import (
	"context"
	"errors"
	"fmt"

	"gamelist/backend/internal/logger"
	"gamelist/backend/internal/models"
	"gamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// UserLoader looks up the user a session belongs to.
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

// LoadPrincipal resolves the session cookie to a user once per request.
// Invalid or stale sessions are treated as anonymous and the cookie is cleared.
func LoadPrincipal(sessions *Sessions, users UserLoader, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, present, err := sessions.UserID(c)
		if !present {
			c.Next()
			return
		}
		if err != nil {
			log.Debug(fmt.Sprintf("discarding session cookie: %v", err))
			sessions.Clear(c)
			c.Next()
			return
		}

		user, err := users.UserByID(c.Request.Context(), userID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Debug(fmt.Sprintf("session user %d no longer exists", userID))
			sessions.Clear(c)
		case err != nil:
			log.Error(fmt.Sprintf("failed to load session user %d: %v", userID, err))
		default:
			c.Set(principalKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireUser aborts anonymous requests through deny.
// It must be used AFTER LoadPrincipal.
func RequireUser(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

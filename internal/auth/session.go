package auth

import (
	"net/http"
	"time"

	"gamelist/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// Sessions issues and clears signed session cookies.
type Sessions struct {
	secret string
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session manager signing tokens with secret.
func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{secret: secret, ttl: jwt.DefaultTTL, secure: secure}
}

// Secure reports whether cookies are restricted to HTTPS.
func (s *Sessions) Secure() bool {
	return s.secure
}

// Issue logs userID in by setting a fresh session cookie.
func (s *Sessions) Issue(c *gin.Context, userID uint) error {
	token, err := jwt.GenerateToken(s.secret, userID, s.ttl)
	if err != nil {
		return err
	}
	s.setCookie(c, token, int(s.ttl.Seconds()))
	return nil
}

// Clear expires the session cookie. Safe to call when no session exists.
func (s *Sessions) Clear(c *gin.Context) {
	s.setCookie(c, "", -1)
}

// UserID resolves the session cookie. present is false when the request carries none.
func (s *Sessions) UserID(c *gin.Context) (userID uint, present bool, err error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return 0, false, nil
	}
	userID, err = jwt.ParseToken(s.secret, token)
	return userID, true, err
}

func (s *Sessions) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", s.secure, true)
}

package handler

import (
	"net/http"
	"time"

	"gamelist/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// render executes a page template with the data every layout needs.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	data["User"] = auth.CurrentUser(c)
	data["Flashes"] = h.takeFlashes(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

// renderError renders a standardized error page using the error.html template.
func (h *Handler) renderError(c *gin.Context, status int, title, message string) {
	h.render(c, status, "error.html", gin.H{
		"Title":      title,
		"StatusCode": status,
		"ErrorTitle": title,
		"Message":    message,
	})
	c.Abort()
}

func (h *Handler) unauthorized(c *gin.Context) {
	h.renderError(c, http.StatusUnauthorized, "Unauthorized", "You are not allowed to do that.")
}

func (h *Handler) tooManyRequests(c *gin.Context) {
	h.renderError(c, http.StatusTooManyRequests, "Too Many Requests", "Slow down and try again in a moment.")
}

func (h *Handler) notFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Not Found", "The page you are looking for does not exist.")
}

// flash stores a one-shot message shown on the next rendered page.
func (h *Handler) flash(c *gin.Context, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, message, 60, "/", "", h.sessions.Secure(), true)
}

func (h *Handler) takeFlashes(c *gin.Context) []string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", h.sessions.Secure(), true)
	return []string{raw}
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

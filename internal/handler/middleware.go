package handler

import (
	"fmt"
	"net/http"
	"time"

	"gamelist/backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request trace id.
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once it completes.
// A well-formed incoming X-Request-ID is reused.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s %d %s request_id=%s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), requestID)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(line)
		case status >= http.StatusBadRequest:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
}

// recovery turns panics into the 500 page.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.logger.Error(fmt.Sprintf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered))
		h.renderError(c, http.StatusInternalServerError, "Internal Server Error", "Something went wrong. Please try again later.")
	})
}

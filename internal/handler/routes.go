package handler

import (
	"fmt"
	"net/http"

	"gamelist/backend/internal/auth"
	"gamelist/backend/internal/metrics"
	"gamelist/backend/internal/web"

	"github.com/gin-gonic/gin"
)

var getAndPost = []string{http.MethodGet, http.MethodPost}

// NewRouter wires middleware, templates and every route of the site.
// Forwarded client addresses are honoured only from trustedProxies.
func NewRouter(h *Handler, m *metrics.Metrics, limiter *auth.RateLimiter, trustedProxies []string) (*gin.Engine, error) {
	tmpl, err := web.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.Use(
		RequestLogger(h.logger),
		h.recovery(),
		m.Middleware(),
		auth.LoadPrincipal(h.sessions, h.store, h.logger),
	)
	router.NoRoute(h.notFound)

	// Health check and metrics
	router.GET("/ping", h.Ping)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Public pages
	router.GET("/", h.Home)
	router.GET("/logout", h.Logout)
	router.GET("/user/:id", h.Profile)
	router.GET("/list/:id", h.ShowList)

	// Credentials
	throttled := router.Group("/")
	throttled.Use(limiter.Middleware(h.tooManyRequests))
	{
		throttled.POST("/register", h.Register)
		throttled.POST("/login", h.Login)
	}

	// Pages that need a logged-in user; ownership is checked per handler.
	// Actions that change state accept POST only.
	private := router.Group("/")
	private.Use(auth.RequireUser(h.unauthorized))
	{
		private.POST("/delete_user/:id", h.DeleteUser)
		private.Match(getAndPost, "/new_list", h.NewList)
		private.Match(getAndPost, "/edit_list/:id", h.EditList)
		private.POST("/delete_list/:id", h.DeleteList)
		private.POST("/sort_list/:id", h.SortList)
		private.Match(getAndPost, "/search_game/:id", h.SearchGame)
		private.POST("/add_game/:id", h.AddGame)
		private.Match(getAndPost, "/edit_game/:id", h.EditGame)
		private.POST("/delete_game/:id", h.DeleteGame)
	}

	return router, nil
}

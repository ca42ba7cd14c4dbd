// Package handler serves the HTML pages and form posts of the game list site.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamelist/backend/internal/auth"
	"gamelist/backend/internal/catalog"
	"gamelist/backend/internal/logger"
	"gamelist/backend/internal/models"
	"gamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Catalog is the subset of the catalog client the handlers use.
type Catalog interface {
	Featured(ctx context.Context) ([]catalog.Featured, error)
	Search(ctx context.Context, title string) ([]catalog.Summary, error)
	Game(ctx context.Context, id int64) (*catalog.Detail, error)
}

// Handler holds the dependencies shared by every page.
type Handler struct {
	store      *store.Store
	catalog    Catalog
	sessions   *auth.Sessions
	logger     logger.Logger
	bcryptCost int
}

// New creates a Handler.
func New(s *store.Store, c Catalog, sessions *auth.Sessions, log logger.Logger, bcryptCost int) *Handler {
	registerFormFieldNames()
	return &Handler{
		store:      s,
		catalog:    c,
		sessions:   sessions,
		logger:     log,
		bcryptCost: bcryptCost,
	}
}

// Ping is the health check endpoint.
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// parseID reads a positive numeric path parameter and renders 400 otherwise.
func (h *Handler) parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.renderError(c, http.StatusBadRequest, "Bad Request", fmt.Sprintf("%q is not a valid id.", c.Param(name)))
		return 0, false
	}
	return uint(id), true
}

// ownedList loads the list in the :id parameter and checks it belongs to the principal.
// On failure the response has been written.
func (h *Handler) ownedList(c *gin.Context) (*models.List, bool) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return nil, false
	}
	list, err := h.store.ListByID(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err)
		return nil, false
	}
	if !list.OwnedBy(auth.CurrentUser(c).ID) {
		h.unauthorized(c)
		return nil, false
	}
	return list, true
}

// ownedGame loads the game in the :id parameter and checks its list belongs to the principal.
func (h *Handler) ownedGame(c *gin.Context) (*models.Game, bool) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	game, err := h.store.GameByID(ctx, id)
	if err != nil {
		h.handleStoreError(c, err)
		return nil, false
	}
	list, err := h.store.ListByID(ctx, game.ListID)
	if err != nil {
		h.handleStoreError(c, err)
		return nil, false
	}
	if !list.OwnedBy(auth.CurrentUser(c).ID) {
		h.unauthorized(c)
		return nil, false
	}
	return game, true
}

func (h *Handler) handleStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "Not Found", "The page you are looking for does not exist.")
		return
	}
	h.logger.Error(fmt.Sprintf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err))
	h.renderError(c, http.StatusInternalServerError, "Internal Server Error", "Something went wrong. Please try again later.")
}

func (h *Handler) handleCatalogError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "Not Found", "That game is not in the catalog.")
		return
	}
	h.renderError(c, http.StatusBadGateway, "Upstream Data Invalid", "The game catalog could not be reached or returned unexpected data.")
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gamelist/backend/internal/catalog"
	"gamelist/backend/internal/models"
	"gamelist/backend/internal/web"

	"github.com/gin-gonic/gin"
)

const maxTitleLength = 250

// SearchGame shows the title search form and the catalog results for a list.
func (h *Handler) SearchGame(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.store.ListByID(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderSearch(c, http.StatusOK, id, web.NewForm())
		return
	}

	var input searchForm
	form, err := bindForm(c, &input)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	if form.Error("title") == "" && catalog.SearchTerm(input.Title) == "" {
		form.Fail("title", "Enter a game title.")
	}
	if !form.Valid() {
		h.renderSearch(c, http.StatusBadRequest, id, form)
		return
	}

	games, err := h.catalog.Search(c.Request.Context(), input.Title)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	h.render(c, http.StatusOK, "results.html", gin.H{
		"Title":  "Results",
		"ListID": id,
		"Games":  games,
	})
}

// AddGame copies a catalog game into the list and continues to its review form.
func (h *Handler) AddGame(c *gin.Context) {
	list, ok := h.ownedList(c)
	if !ok {
		return
	}

	catalogID, err := strconv.ParseInt(c.Query("game_id"), 10, 64)
	if err != nil || catalogID <= 0 {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "A valid game_id is required.")
		return
	}

	detail, err := h.catalog.Game(c.Request.Context(), catalogID)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	game := &models.Game{
		Title:       truncate(detail.Name, maxTitleLength),
		Year:        detail.Year,
		Description: detail.Description(),
		ImgURL:      detail.CoverURL,
		ListID:      list.ID,
	}
	if err := h.store.CreateGame(c.Request.Context(), game); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/edit_game/%d", game.ID))
}

// EditGame sets a game's rating and review.
func (h *Handler) EditGame(c *gin.Context) {
	game, ok := h.ownedGame(c)
	if !ok {
		return
	}

	if c.Request.Method != http.MethodPost {
		form := web.NewForm()
		if game.Rating != nil {
			form.Set("rating", strconv.Itoa(*game.Rating))
		}
		if game.Review != nil {
			form.Set("review", *game.Review)
		}
		h.renderEditGame(c, http.StatusOK, game, form)
		return
	}

	var input editGameForm
	form, err := bindForm(c, &input)
	if err != nil {
		form.Fail("rating", fmt.Sprintf("Enter a whole number between %d and %d.", models.MinRating, models.MaxRating))
	}
	if strings.TrimSpace(c.PostForm("rating")) == "" {
		form.Fail("rating", "This field is required.")
	}
	if !form.Valid() {
		h.renderEditGame(c, http.StatusBadRequest, game, form)
		return
	}

	if err := h.store.UpdateGameReview(c.Request.Context(), game.ID, *input.Rating, input.Review); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/list/%d", game.ListID))
}

// DeleteGame removes a game from its list.
func (h *Handler) DeleteGame(c *gin.Context) {
	game, ok := h.ownedGame(c)
	if !ok {
		return
	}
	if err := h.store.DeleteGame(c.Request.Context(), game.ID); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/list/%d", game.ListID))
}

func (h *Handler) renderSearch(c *gin.Context, status int, listID uint, form *web.Form) {
	h.render(c, status, "search_game.html", gin.H{
		"Title":  "Find a game",
		"ListID": listID,
		"Form":   form,
	})
}

func (h *Handler) renderEditGame(c *gin.Context, status int, game *models.Game, form *web.Form) {
	h.render(c, status, "edit_game.html", gin.H{
		"Title": game.Title,
		"Game":  game,
		"Form":  form,
	})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package handler

import (
	"net/http"

	"gamelist/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// Profile shows a user and their lists.
func (h *Handler) Profile(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.UserWithLists(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}

	principal := auth.CurrentUser(c)
	h.render(c, http.StatusOK, "profile.html", gin.H{
		"Title":   user.Name,
		"Profile": user,
		"IsOwner": principal != nil && principal.ID == user.ID,
	})
}

// DeleteUser removes the principal's own account with all lists and games.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if auth.CurrentUser(c).ID != id {
		h.unauthorized(c)
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, err)
		return
	}

	h.sessions.Clear(c)
	h.redirect(c, "/")
}

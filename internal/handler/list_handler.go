package handler

import (
	"fmt"
	"net/http"

	"gamelist/backend/internal/auth"
	"gamelist/backend/internal/models"
	"gamelist/backend/internal/web"

	"github.com/gin-gonic/gin"
)

// NewList shows the list form and creates a list owned by the principal.
func (h *Handler) NewList(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.renderListForm(c, http.StatusOK, "New list", "/new_list", web.NewForm())
		return
	}

	var input listForm
	form, err := bindForm(c, &input)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	if !form.Valid() {
		h.renderListForm(c, http.StatusBadRequest, "New list", "/new_list", form)
		return
	}

	principal := auth.CurrentUser(c)
	list := &models.List{
		Name:        input.Name,
		Description: input.Description,
		ImgURL:      input.ImgURL,
		AuthorID:    principal.ID,
	}
	if err := h.store.CreateList(c.Request.Context(), list); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/user/%d", principal.ID))
}

// ShowList renders a list, ordered by rating when its sort flag is set.
func (h *Handler) ShowList(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.store.ListWithGames(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}

	principal := auth.CurrentUser(c)
	h.render(c, http.StatusOK, "list.html", gin.H{
		"Title":   list.Name,
		"List":    list,
		"Games":   list.DisplayGames(),
		"IsOwner": principal != nil && list.OwnedBy(principal.ID),
	})
}

// EditList overwrites a list's name, description and image.
func (h *Handler) EditList(c *gin.Context) {
	list, ok := h.ownedList(c)
	if !ok {
		return
	}
	action := fmt.Sprintf("/edit_list/%d", list.ID)

	if c.Request.Method != http.MethodPost {
		form := web.NewForm().
			Set("name", list.Name).
			Set("description", list.Description).
			Set("img_url", list.ImgURL)
		h.renderListForm(c, http.StatusOK, "Edit list", action, form)
		return
	}

	var input listForm
	form, err := bindForm(c, &input)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	if !form.Valid() {
		h.renderListForm(c, http.StatusBadRequest, "Edit list", action, form)
		return
	}

	list.Name = input.Name
	list.Description = input.Description
	list.ImgURL = input.ImgURL
	if err := h.store.UpdateList(c.Request.Context(), list); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/list/%d", list.ID))
}

// DeleteList removes a list and its games.
func (h *Handler) DeleteList(c *gin.Context) {
	list, ok := h.ownedList(c)
	if !ok {
		return
	}
	if err := h.store.DeleteList(c.Request.Context(), list.ID); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/user/%d", list.AuthorID))
}

// SortList flips the list's sort-by-rating flag.
func (h *Handler) SortList(c *gin.Context) {
	list, ok := h.ownedList(c)
	if !ok {
		return
	}
	if err := h.store.SetListSorted(c.Request.Context(), list.ID, !list.Sorted); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/list/%d", list.ID))
}

func (h *Handler) renderListForm(c *gin.Context, status int, title, action string, form *web.Form) {
	h.render(c, status, "list_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
	})
}

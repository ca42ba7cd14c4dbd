package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gamelist/backend/internal/auth"
	"gamelist/backend/internal/catalog"
	"gamelist/backend/internal/models"
	"gamelist/backend/internal/store"
	"gamelist/backend/internal/web"

	"github.com/gin-gonic/gin"
)

// Flash messages for rejected registrations and logins.
const (
	msgEmailInUse        = "Email already in use"
	msgEmailNotFound     = "Email does not exist"
	msgPasswordIncorrect = "Password incorrect"
)

// Home renders the featured slate with the registration and login forms.
func (h *Handler) Home(c *gin.Context) {
	h.renderHome(c, http.StatusOK, web.NewForm(), web.NewForm())
}

func (h *Handler) renderHome(c *gin.Context, status int, register, login *web.Form) {
	games, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		h.logger.Warn(fmt.Sprintf("rendering home without featured games: %v", err))
		games = []catalog.Featured{}
	}

	h.render(c, status, "index.html", gin.H{
		"Games":    games,
		"Register": register,
		"Login":    login,
	})
}

// Register creates an account and logs it in.
func (h *Handler) Register(c *gin.Context) {
	var input registerForm
	form, err := bindForm(c, &input)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	if !form.Valid() {
		h.renderHome(c, http.StatusBadRequest, form, web.NewForm())
		return
	}

	ctx := c.Request.Context()
	email := strings.TrimSpace(input.Email)

	_, err = h.store.UserByEmail(ctx, email)
	switch {
	case err == nil:
		h.flash(c, msgEmailInUse)
		h.redirect(c, "/")
		return
	case !errors.Is(err, store.ErrNotFound):
		h.handleStoreError(c, err)
		return
	}

	hash, err := auth.HashPassword(input.Password, h.bcryptCost)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}

	user := &models.User{Email: email, PasswordHash: hash, Name: strings.TrimSpace(input.Name)}
	if err := h.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.flash(c, msgEmailInUse)
			h.redirect(c, "/")
			return
		}
		h.handleStoreError(c, err)
		return
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, "/")
}

// Login checks the credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var input loginForm
	form, err := bindForm(c, &input)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	if !form.Valid() {
		h.renderHome(c, http.StatusBadRequest, web.NewForm(), form)
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), strings.TrimSpace(input.Email))
	if errors.Is(err, store.ErrNotFound) {
		h.flash(c, msgEmailNotFound)
		h.redirect(c, "/")
		return
	}
	if err != nil {
		h.handleStoreError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		h.flash(c, msgPasswordIncorrect)
		h.redirect(c, "/")
		return
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		h.handleStoreError(c, err)
		return
	}
	h.redirect(c, "/")
}

// Logout ends the session. Repeated calls are harmless.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	h.redirect(c, "/")
}

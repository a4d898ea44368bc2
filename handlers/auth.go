package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/racebook/middleware"
	"github.com/padraicbc/racebook/models"
	"github.com/padraicbc/racebook/store"
)

// authFormData feeds the register and login templates. Login is echoed back
// so a failed submission keeps the field filled.
type authFormData struct {
	pageData
	Login string
	Error string
}

const (
	msgRequired           = "Login and password are required"
	msgAlreadyExists      = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// RegisterForm renders the registration form.
func (h *Handler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", authFormData{pageData: newPageData(c)})
}

// Register processes a registration submission. The unique index on login is
// the authoritative guard against concurrent registrations; the lookup before
// the insert only exists for a friendlier error on the common path.
func (h *Handler) Register(c echo.Context) error {
	login := strings.TrimSpace(c.FormValue("login"))
	password := c.FormValue("password")

	renderErr := func(msg string) error {
		return c.Render(http.StatusOK, "register.html", authFormData{
			pageData: newPageData(c),
			Login:    login,
			Error:    msg,
		})
	}

	if login == "" || password == "" {
		return renderErr(msgRequired)
	}

	ctx := c.Request().Context()

	_, err := h.store.FindUserByLogin(ctx, login)
	switch {
	case err == nil:
		return renderErr(msgAlreadyExists)
	case !errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{Login: login, Role: models.RolePeasant}
	if role, ok := models.ParseRole(c.FormValue("type")); ok {
		user.Role = role
	}
	if err := user.SetPassword(password); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return renderErr(msgAlreadyExists)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return redirectWithFlash(c, "/login", "User created, please log in")
}

// LoginForm renders the login form.
func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", authFormData{pageData: newPageData(c)})
}

// Login processes a login submission and establishes a session on success.
// Unknown login and wrong password get the same message.
func (h *Handler) Login(c echo.Context) error {
	login := strings.TrimSpace(c.FormValue("login"))
	password := c.FormValue("password")

	renderErr := func(msg string) error {
		return c.Render(http.StatusOK, "login.html", authFormData{
			pageData: newPageData(c),
			Login:    login,
			Error:    msg,
		})
	}

	if login == "" || password == "" {
		return renderErr(msgRequired)
	}

	ctx := c.Request().Context()

	user, err := h.store.FindUserByLogin(ctx, login)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return renderErr(msgInvalidCredentials)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !user.CheckPassword(password) {
		return renderErr(msgInvalidCredentials)
	}

	sess, err := h.store.CreateSession(ctx, user.ID, h.sessionTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	mw.SetCookie(c, sess)

	return redirectWithFlash(c, "/", "Logged in successfully")
}

// Logout destroys the current session. Routed behind RequireSession, so an
// anonymous request never reaches it.
func (h *Handler) Logout(c echo.Context) error {
	token, ok := mw.SessionToken(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	if err := h.store.DeleteSession(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	mw.ClearCookie(c)

	return redirectWithFlash(c, "/", "Logged out")
}

func redirectWithFlash(c echo.Context, path, flash string) error {
	return c.Redirect(http.StatusSeeOther, path+"?flash="+url.QueryEscape(flash))
}

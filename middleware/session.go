// Package middleware wires the session cookie into echo's request context.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racebook/models"
	"github.com/padraicbc/racebook/store"
)

// CookieName is the session cookie set on login.
const CookieName = "session"

const (
	userKey  = "user"
	tokenKey = "session_token"
)

// LoadUser resolves the session cookie to a user and stores it in the
// request context. Requests without a valid cookie stay anonymous; a stale
// cookie is cleared so the browser stops sending it.
func LoadUser(s *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := s.FindSession(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					ClearCookie(c)
					return next(c)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set(userKey, sess.User)
			c.Set(tokenKey, sess.Token)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to the login page.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUser(c); !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireAdmin redirects anonymous requests to the login page and rejects
// signed-in non-admins with 403.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CurrentUser returns the signed-in user for the request, if any.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userKey).(*models.User)
	return user, ok && user != nil
}

// SessionToken returns the raw session token for the request, if any.
func SessionToken(c echo.Context) (string, bool) {
	token, ok := c.Get(tokenKey).(string)
	return token, ok && token != ""
}

// SetCookie attaches the session cookie for sess to the response.
func SetCookie(c echo.Context, sess *models.Session) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the browser.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

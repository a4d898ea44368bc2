package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racebook/models"
)

type adminData struct {
	pageData
	Users []models.User
}

// Admin renders the user list. Routed behind RequireAdmin.
func (h *Handler) Admin(c echo.Context) error {
	users, err := h.store.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "admin.html", adminData{
		pageData: newPageData(c),
		Users:    users,
	})
}

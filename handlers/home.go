package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/racebook/middleware"
	"github.com/padraicbc/racebook/models"
)

// pageData carries the fields every view shares.
type pageData struct {
	User  *models.User
	Flash string
}

func newPageData(c echo.Context) pageData {
	user, _ := mw.CurrentUser(c)
	return pageData{
		User:  user,
		Flash: c.QueryParam("flash"),
	}
}

// Index renders the home view.
func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newPageData(c))
}

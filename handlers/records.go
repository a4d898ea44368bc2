package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racebook/models"
	"github.com/padraicbc/racebook/store"
)

type ownersData struct {
	pageData
	Owners []models.Owner
}

type horsesData struct {
	pageData
	Owner  *models.Owner
	Horses []models.Horse
}

type jockeysData struct {
	pageData
	Jockeys []models.Jockey
}

type racesData struct {
	pageData
	Races []models.Race
}

type resultsData struct {
	pageData
	Race    *models.Race
	Results []store.ResultRow
}

// Owners renders the owner list.
func (h *Handler) Owners(c echo.Context) error {
	owners, err := h.store.ListOwners(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "owners.html", ownersData{
		pageData: newPageData(c),
		Owners:   owners,
	})
}

// OwnerHorses renders one owner's horses.
func (h *Handler) OwnerHorses(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad owner id")
	}

	ctx := c.Request().Context()

	owner, err := h.store.FindOwner(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "owner not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	horses, err := h.store.FindHorsesByOwner(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "horses.html", horsesData{
		pageData: newPageData(c),
		Owner:    owner,
		Horses:   horses,
	})
}

// Jockeys renders the jockey list.
func (h *Handler) Jockeys(c echo.Context) error {
	jockeys, err := h.store.ListJockeys(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "jockeys.html", jockeysData{
		pageData: newPageData(c),
		Jockeys:  jockeys,
	})
}

// Races renders the race list, most recent first.
func (h *Handler) Races(c echo.Context) error {
	races, err := h.store.ListRaces(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "races.html", racesData{
		pageData: newPageData(c),
		Races:    races,
	})
}

// RaceResults renders one race's results with horse and jockey names.
func (h *Handler) RaceResults(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad race id")
	}

	ctx := c.Request().Context()

	race, err := h.store.FindRace(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results, err := h.store.FindResultsByRace(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "results.html", resultsData{
		pageData: newPageData(c),
		Race:     race,
		Results:  results,
	})
}

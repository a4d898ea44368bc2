package handlers

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/racebook/models"
	"github.com/padraicbc/racebook/store"
)

// seedRecords loads a small fixture: one owner with two horses, two jockeys,
// one race with two results.
func seedRecords(t *testing.T, st *store.Store) (*models.Owner, *models.Race) {
	t.Helper()
	ctx := context.Background()
	bdb := st.DB()

	owner := &models.Owner{Name: "Meadow Farm"}
	_, err := bdb.NewInsert().Model(owner).Exec(ctx)
	require.NoError(t, err)

	horses := []models.Horse{
		{Name: "Zephyr", Gender: "male", Age: 5, OwnerID: owner.ID},
		{Name: "Aurora", Gender: "female", Age: 4, OwnerID: owner.ID},
	}
	_, err = bdb.NewInsert().Model(&horses).Exec(ctx)
	require.NoError(t, err)

	jockeys := []models.Jockey{
		{Name: "T. Quinn", Age: 29, Rating: 8.4},
		{Name: "M. Reyes", Age: 33, Rating: 7.1},
	}
	_, err = bdb.NewInsert().Model(&jockeys).Exec(ctx)
	require.NoError(t, err)

	race := &models.Race{Date: "2026-05-02", Time: "14:30", Place: "Fairview"}
	_, err = bdb.NewInsert().Model(race).Exec(ctx)
	require.NoError(t, err)

	results := []models.Result{
		{RaceID: race.ID, HorseID: horses[0].ID, JockeyID: jockeys[0].ID, Position: 1, RaceTime: "1:51.8"},
		{RaceID: race.ID, HorseID: horses[1].ID, JockeyID: jockeys[1].ID, Position: 2, RaceTime: "1:52.3"},
	}
	_, err = bdb.NewInsert().Model(&results).Exec(ctx)
	require.NoError(t, err)

	return owner, race
}

func TestRecordPages_RequireSession(t *testing.T) {
	e, _ := newTestApp(t)

	for _, path := range []string{"/owners", "/owners/1/horses", "/jockeys", "/races", "/races/1/results"} {
		rec := doGet(e, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, "%s must be login-gated", path)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	}
}

func TestOwnersPage(t *testing.T) {
	e, st := newTestApp(t)
	seedRecords(t, st)

	require.Equal(t, http.StatusSeeOther, register(e, "alice", "pw123", "").Code)
	_, cookie := login(e, "alice", "pw123")
	require.NotNil(t, cookie)

	rec := doGet(e, "/owners", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Meadow Farm")
}

func TestOwnerHorsesPage(t *testing.T) {
	e, st := newTestApp(t)
	owner, _ := seedRecords(t, st)

	require.Equal(t, http.StatusSeeOther, register(e, "alice", "pw123", "").Code)
	_, cookie := login(e, "alice", "pw123")
	require.NotNil(t, cookie)

	rec := doGet(e, "/owners/"+strconv.Itoa(owner.ID)+"/horses", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Zephyr")
	assert.Contains(t, body, "Aurora")

	rec = doGet(e, "/owners/9999/horses", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doGet(e, "/owners/abc/horses", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRaceResultsPage(t *testing.T) {
	e, st := newTestApp(t)
	_, race := seedRecords(t, st)

	require.Equal(t, http.StatusSeeOther, register(e, "alice", "pw123", "").Code)
	_, cookie := login(e, "alice", "pw123")
	require.NotNil(t, cookie)

	rec := doGet(e, "/races/"+strconv.Itoa(race.ID)+"/results", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Fairview")
	assert.Contains(t, body, "Zephyr")
	assert.Contains(t, body, "T. Quinn")
	assert.Contains(t, body, "1:51.8")

	rec = doGet(e, "/races/9999/results", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJockeysAndRacesPages(t *testing.T) {
	e, st := newTestApp(t)
	seedRecords(t, st)

	require.Equal(t, http.StatusSeeOther, register(e, "alice", "pw123", "").Code)
	_, cookie := login(e, "alice", "pw123")
	require.NotNil(t, cookie)

	rec := doGet(e, "/jockeys", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "T. Quinn")

	rec = doGet(e, "/races", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fairview")
}


package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/padraicbc/racebook/db"
	"github.com/padraicbc/racebook/models"
)

// setupTestStore creates a Store over an in-memory SQLite database with the
// full schema. Each test gets its own database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err, "open sqlite")
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(context.Background(), bdb), "create tables")

	return New(bdb)
}

func newTestUser(t *testing.T, s *Store, login, password string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{Login: login, Role: role}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, s.InsertUser(context.Background(), user))
	return user
}

func TestInsertUser_DuplicateLogin(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	newTestUser(t, s, "bob", "pw123", models.RolePeasant)

	dupe := &models.User{Login: "bob", Role: models.RolePeasant}
	require.NoError(t, dupe.SetPassword("pw123"))
	err := s.InsertUser(ctx, dupe)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	n, err := s.CountUsersByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "duplicate insert must not create a second row")
}

func TestInsertUser_RejectsUnknownRole(t *testing.T) {
	s := setupTestStore(t)

	user := &models.User{Login: "eve", Role: "overlord"}
	require.NoError(t, user.SetPassword("pw"))
	assert.Error(t, s.InsertUser(context.Background(), user))
}

func TestFindUserByLogin(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	newTestUser(t, s, "alice", "pw123", models.RoleAdmin)

	user, err := s.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.CheckPassword("pw123"))
	assert.NotEqual(t, "pw123", user.Password, "password must be stored hashed")

	_, err = s.FindUserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "alice", "pw123", models.RolePeasant)

	sess, err := s.CreateSession(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	found, err := s.FindSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	require.NotNil(t, found.User)
	assert.Equal(t, "alice", found.User.Login)

	require.NoError(t, s.DeleteSession(ctx, sess.Token))
	_, err = s.FindSession(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.DeleteSession(ctx, sess.Token))
}

func TestFindSession_Expired(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "alice", "pw123", models.RolePeasant)

	sess, err := s.CreateSession(ctx, user.ID, -time.Minute)
	require.NoError(t, err)

	_, err = s.FindSession(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	// The expired row is gone, not just hidden.
	n, err := s.db.NewSelect().Model((*models.Session)(nil)).
		Where("token = ?", sess.Token).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPurgeExpiredSessions(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "alice", "pw123", models.RolePeasant)

	_, err := s.CreateSession(ctx, user.ID, -time.Minute)
	require.NoError(t, err)
	live, err := s.CreateSession(ctx, user.ID, time.Hour)
	require.NoError(t, err)

	n, err := s.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.FindSession(ctx, live.Token)
	assert.NoError(t, err, "live session must survive the purge")
}

func TestFindHorsesByOwner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	owners := []models.Owner{{Name: "Meadow Farm"}, {Name: "Hillside Stables"}}
	_, err := s.db.NewInsert().Model(&owners).Exec(ctx)
	require.NoError(t, err)

	horses := []models.Horse{
		{Name: "Zephyr", Gender: "male", Age: 5, OwnerID: owners[0].ID},
		{Name: "Aurora", Gender: "female", Age: 4, OwnerID: owners[0].ID},
		{Name: "Comet", Gender: "male", Age: 6, OwnerID: owners[1].ID},
	}
	_, err = s.db.NewInsert().Model(&horses).Exec(ctx)
	require.NoError(t, err)

	got, err := s.FindHorsesByOwner(ctx, owners[0].ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Aurora", got[0].Name, "horses ordered by name")
	assert.Equal(t, "Zephyr", got[1].Name)

	got, err = s.FindHorsesByOwner(ctx, owners[1].ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Comet", got[0].Name)

	_, err = s.FindOwner(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindResultsByRace(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	owner := &models.Owner{Name: "Meadow Farm"}
	_, err := s.db.NewInsert().Model(owner).Exec(ctx)
	require.NoError(t, err)

	horses := []models.Horse{
		{Name: "Zephyr", Gender: "male", Age: 5, OwnerID: owner.ID},
		{Name: "Aurora", Gender: "female", Age: 4, OwnerID: owner.ID},
	}
	_, err = s.db.NewInsert().Model(&horses).Exec(ctx)
	require.NoError(t, err)

	jockeys := []models.Jockey{
		{Name: "T. Quinn", Age: 29, Rating: 8.4},
		{Name: "M. Reyes", Age: 33, Rating: 7.1},
	}
	_, err = s.db.NewInsert().Model(&jockeys).Exec(ctx)
	require.NoError(t, err)

	race := &models.Race{Date: "2026-05-02", Time: "14:30", Place: "Fairview"}
	_, err = s.db.NewInsert().Model(race).Exec(ctx)
	require.NoError(t, err)

	results := []models.Result{
		{RaceID: race.ID, HorseID: horses[1].ID, JockeyID: jockeys[1].ID, Position: 2, RaceTime: "1:52.3"},
		{RaceID: race.ID, HorseID: horses[0].ID, JockeyID: jockeys[0].ID, Position: 1, RaceTime: "1:51.8"},
	}
	_, err = s.db.NewInsert().Model(&results).Exec(ctx)
	require.NoError(t, err)

	rows, err := s.FindResultsByRace(ctx, race.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Position, "results ordered by position")
	assert.Equal(t, "Zephyr", rows[0].HorseName)
	assert.Equal(t, "T. Quinn", rows[0].JockeyName)
	assert.Equal(t, "1:51.8", rows[0].RaceTime)
	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, "Aurora", rows[1].HorseName)

	_, err = s.FindRace(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_OrderedByLogin(t *testing.T) {
	s := setupTestStore(t)

	newTestUser(t, s, "carol", "pw", models.RolePeasant)
	newTestUser(t, s, "alice", "pw", models.RoleAdmin)
	newTestUser(t, s, "bob", "pw", models.RolePeasant)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Login)
	assert.Equal(t, "bob", users[1].Login)
	assert.Equal(t, "carol", users[2].Login)
}

// cmd/migrate/main.go
// Imports the legacy MySQL deployment's records into the local PostgreSQL
// database. One-off tool; this is the only write path for owners, horses,
// jockeys, races and results.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/racebook?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racebook/config"
	bundb "github.com/padraicbc/racebook/db"
	"github.com/padraicbc/racebook/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/racebook?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return migrateUsers(ctx, myDB, pgDB) }},
		{"owners", func() (int, error) { return migrateOwners(ctx, myDB, pgDB) }},
		{"horses", func() (int, error) { return migrateHorses(ctx, myDB, pgDB) }},
		{"jockeys", func() (int, error) { return migrateJockeys(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return migrateRaces(ctx, myDB, pgDB) }},
		{"results", func() (int, error) { return migrateResults(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-10s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func insertBatch[T any](ctx context.Context, db *bun.DB, rows []T) (int, error) {
	total := 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batch := rows[start:end]
		if _, err := db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}

func migrateUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, login, password, type FROM users")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Login, &u.Password, &role); err != nil {
			return 0, err
		}
		parsed, ok := models.ParseRole(role)
		if !ok {
			log.Fatalf("user %q: unknown role %q in legacy data", u.Login, role)
		}
		u.Role = parsed
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, users)
}

func migrateOwners(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, name, address, phone FROM owners")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var owners []models.Owner
	for rows.Next() {
		var o models.Owner
		var address, phone sql.NullString
		if err := rows.Scan(&o.ID, &o.Name, &address, &phone); err != nil {
			return 0, err
		}
		o.Address = nullStr(address)
		o.Phone = nullStr(phone)
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, owners)
}

func migrateHorses(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, name, gender, age, owner_id FROM horses")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var horses []models.Horse
	for rows.Next() {
		var h models.Horse
		if err := rows.Scan(&h.ID, &h.Name, &h.Gender, &h.Age, &h.OwnerID); err != nil {
			return 0, err
		}
		horses = append(horses, h)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, horses)
}

func migrateJockeys(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, name, address, age, rating FROM jockeys")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var jockeys []models.Jockey
	for rows.Next() {
		var j models.Jockey
		var address sql.NullString
		if err := rows.Scan(&j.ID, &j.Name, &address, &j.Age, &j.Rating); err != nil {
			return 0, err
		}
		j.Address = nullStr(address)
		jockeys = append(jockeys, j)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, jockeys)
}

func migrateRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, DATE_FORMAT(date, '%Y-%m-%d'), TIME_FORMAT(time, '%H:%i'), place, title FROM races")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var races []models.Race
	for rows.Next() {
		var r models.Race
		var title sql.NullString
		if err := rows.Scan(&r.ID, &r.Date, &r.Time, &r.Place, &title); err != nil {
			return 0, err
		}
		r.Title = nullStr(title)
		races = append(races, r)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, races)
}

func migrateResults(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, race_id, horse_id, jockey_id, position, race_time FROM results")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var r models.Result
		if err := rows.Scan(&r.ID, &r.RaceID, &r.HorseID, &r.JockeyID, &r.Position, &r.RaceTime); err != nil {
			return 0, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return insertBatch(ctx, pgDB, results)
}

// resetSequences bumps each serial sequence past the imported ids so new
// inserts don't collide.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	for _, table := range []string{"users", "owners", "horses", "jockeys", "races", "results"} {
		stmt := "SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), COALESCE(MAX(id), 1)) FROM " + table
		if _, err := pgDB.ExecContext(ctx, stmt); err != nil {
			log.Printf("reset sequence for %s: %v", table, err)
		}
	}
}

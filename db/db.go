package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/racebook/config"
	"github.com/padraicbc/racebook/models"
)

// Setup opens a PostgreSQL connection using the provided config and waits
// for the database to accept connections. Container orchestration starts the
// app and the database together, so the first pings are allowed to fail.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := WaitReady(context.Background(), db, 2*time.Minute); err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	return db
}

// WaitReady pings the database once a second until it responds or the
// timeout elapses.
func WaitReady(ctx context.Context, db *bun.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	for {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %s: %w", timeout, err)
		case <-time.After(time.Second):
		}
	}
}

// CreateTables creates all tables in dependency order, with foreign keys.
// Safe to call repeatedly.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Owner)(nil),
		(*models.Horse)(nil),
		(*models.Jockey)(nil),
		(*models.Race)(nil),
		(*models.Result)(nil),
		(*models.Session)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	return nil
}

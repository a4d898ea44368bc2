// Package store holds all database queries. Handlers never build queries
// themselves; every lookup and insert goes through an explicit method here.
package store

import (
	"errors"
	"strings"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyExists is returned when an insert violates a unique constraint.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store wraps a bun.DB with the application's query methods.
type Store struct {
	db *bun.DB
}

// New creates a Store over the given database handle.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for table creation and tests.
func (s *Store) DB() *bun.DB {
	return s.db
}

// isUniqueViolation matches the duplicate-key errors of the two dialects in
// use (Postgres in production, SQLite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/padraicbc/racebook/models"
)

// FindUserByLogin returns the user with the given login, or ErrNotFound.
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().Model(user).
		Where("login = ?", login).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("user %q: unknown role %q", login, user.Role)
	}
	return user, nil
}

// InsertUser inserts a new user row. A duplicate login surfaces as
// ErrAlreadyExists; the unique index on login is the authoritative guard, so
// two concurrent registrations cannot both succeed.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	if !user.Role.Valid() {
		return fmt.Errorf("insert user %q: unknown role %q", user.Login, user.Role)
	}
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered by login.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.NewSelect().Model(&users).
		Order("login ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CountUsersByLogin returns how many rows carry the given login. Used by
// tests to assert the uniqueness guarantee; always 0 or 1 in practice.
func (s *Store) CountUsersByLogin(ctx context.Context, login string) (int, error) {
	n, err := s.db.NewSelect().Model((*models.User)(nil)).
		Where("login = ?", login).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

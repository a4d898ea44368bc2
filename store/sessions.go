package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/padraicbc/racebook/models"
)

// CreateSession inserts a session row for userID with a random opaque token
// valid for ttl.
func (s *Store) CreateSession(ctx context.Context, userID int, ttl time.Duration) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.db.NewInsert().Model(sess).Exec(ctx); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// FindSession returns the session for token with its user loaded.
// Expired sessions are deleted and reported as ErrNotFound.
func (s *Store) FindSession(ctx context.Context, token string) (*models.Session, error) {
	sess := &models.Session{}
	err := s.db.NewSelect().Model(sess).
		Relation("User").
		Where("s.token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess.Expired(time.Now()) {
		_ = s.DeleteSession(ctx, token)
		return nil, ErrNotFound
	}
	if sess.User == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

// DeleteSession removes the session row for token. Deleting an unknown
// token is not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.NewDelete().Model((*models.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes all sessions past their expiry and returns
// how many were deleted.
func (s *Store) PurgeExpiredSessions(ctx context.Context) (int, error) {
	res, err := s.db.NewDelete().Model((*models.Session)(nil)).
		Where("expires_at < ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

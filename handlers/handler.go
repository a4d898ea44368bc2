package handlers

import (
	"time"

	"github.com/padraicbc/racebook/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store      *store.Store
	sessionTTL time.Duration
}

// New creates a Handler with the given store and session lifetime.
func New(s *store.Store, sessionTTL time.Duration) *Handler {
	return &Handler{store: s, sessionTTL: sessionTTL}
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session maps a random opaque token to a signed-in user. Rows are deleted
// on logout and lazily on expiry.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Token     string    `bun:"token,pk" json:"-"`
	UserID    int       `bun:"user_id,notnull" json:"userID"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	ExpiresAt time.Time `bun:"expires_at,notnull" json:"expiresAt"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

package models

import (
	"strings"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse authorization tag on a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePeasant Role = "peasant"
)

// ParseRole maps a form or database value onto a known role, case-insensitively.
// The second return is false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RolePeasant:
		return RolePeasant, true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User is an application user with a bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Login    string `bun:"login,notnull,unique" json:"login"`
	Password string `bun:"password,notnull" json:"-"`
	Role     Role   `bun:"role,notnull,default:'peasant'" json:"role"`
}

// SetPassword stores a bcrypt hash of raw. The raw value is never persisted.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
// A user with no stored hash never matches.
func (u *User) CheckPassword(raw string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

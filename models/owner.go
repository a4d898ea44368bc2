package models

import "github.com/uptrace/bun"

// Owner is a horse owner.
type Owner struct {
	bun.BaseModel `bun:"table:owners,alias:o"`

	ID      int     `bun:"id,pk,autoincrement" json:"id"`
	Name    string  `bun:"name,notnull" json:"name"`
	Address *string `bun:"address" json:"address,omitempty"`
	Phone   *string `bun:"phone" json:"phone,omitempty"`
}

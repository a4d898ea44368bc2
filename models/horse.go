package models

import "github.com/uptrace/bun"

// Horse is a racehorse belonging to an owner.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	ID      int    `bun:"id,pk,autoincrement" json:"id"`
	Name    string `bun:"name,notnull" json:"name"`
	Gender  string `bun:"gender,notnull" json:"gender"`
	Age     int    `bun:"age,notnull" json:"age"`
	OwnerID int    `bun:"owner_id,notnull" json:"ownerID"`

	Owner *Owner `bun:"rel:belongs-to,join:owner_id=id" json:"-"`
}

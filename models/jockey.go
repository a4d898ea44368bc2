package models

import "github.com/uptrace/bun"

// Jockey rides in races; rating is the track's performance score.
type Jockey struct {
	bun.BaseModel `bun:"table:jockeys,alias:j"`

	ID      int     `bun:"id,pk,autoincrement" json:"id"`
	Name    string  `bun:"name,notnull" json:"name"`
	Address *string `bun:"address" json:"address,omitempty"`
	Age     int     `bun:"age,notnull" json:"age"`
	Rating  float64 `bun:"rating,notnull" json:"rating"`
}

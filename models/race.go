package models

import "github.com/uptrace/bun"

// Race is a single race meeting entry.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID    int     `bun:"id,pk,autoincrement" json:"id"`
	Date  string  `bun:"date,notnull,type:date" json:"date"`
	Time  string  `bun:"time,notnull" json:"time"`
	Place string  `bun:"place,notnull" json:"place"`
	Title *string `bun:"title" json:"title,omitempty"`
}

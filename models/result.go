package models

import "github.com/uptrace/bun"

// Result is one runner's finishing record in a race.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	RaceID   int    `bun:"race_id,notnull" json:"raceID"`
	HorseID  int    `bun:"horse_id,notnull" json:"horseID"`
	JockeyID int    `bun:"jockey_id,notnull" json:"jockeyID"`
	Position int    `bun:"position,notnull" json:"position"`
	RaceTime string `bun:"race_time,notnull" json:"raceTime"`

	Race   *Race   `bun:"rel:belongs-to,join:race_id=id" json:"-"`
	Horse  *Horse  `bun:"rel:belongs-to,join:horse_id=id" json:"-"`
	Jockey *Jockey `bun:"rel:belongs-to,join:jockey_id=id" json:"-"`
}

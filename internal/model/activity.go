package model

import (
	"github.com/uptrace/bun"
)

// Activity is one extracurricular activity of the school catalog. On the wire
// the collection is keyed by activity name, so the name itself never appears
// inside the serialized object.
type Activity struct {
	bun.BaseModel `bun:"activities"`

	ActivityID      int      `bun:"activity_id,pk,autoincrement" json:"-"`
	Name            string   `bun:"name,notnull,unique" json:"-"`
	Description     string   `bun:"description,notnull" json:"description"`
	Schedule        string   `bun:"schedule,notnull" json:"schedule"`
	MaxParticipants int      `bun:"max_participants,notnull" json:"max_participants"`
	Participants    []string `bun:"participants,notnull,array,type:text[]" json:"participants"`
}

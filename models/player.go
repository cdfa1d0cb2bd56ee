package models

import "time"

// Player is a registered tournament entrant. Ids are assigned by the store
// and increase with registration order.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

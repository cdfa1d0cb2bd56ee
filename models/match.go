package models

import "time"

// Match is one recorded result. Matches are append-only.
type Match struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner" db:"winner"`
	LoserID   int       `json:"loser" db:"loser"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

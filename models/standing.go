package models

// StandingEntry is derived from the match log on every request and never stored.
type StandingEntry struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Wins    int    `json:"wins" yaml:"wins"`
	Matches int    `json:"matches" yaml:"matches"`
}

// Pairing is one next-round matchup.
type Pairing struct {
	ID1   int    `json:"id1" yaml:"id1"`
	Name1 string `json:"name1" yaml:"name1"`
	ID2   int    `json:"id2" yaml:"id2"`
	Name2 string `json:"name2" yaml:"name2"`
}

// RoundPlan is the pairing list for the next round together with the pairs
// in it that have already met. Rematches are reported, not avoided.
type RoundPlan struct {
	Pairings  []Pairing `json:"pairings" yaml:"pairings"`
	Rematches []Pairing `json:"rematches" yaml:"rematches"`
}

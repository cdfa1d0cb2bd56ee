package brackets

import (
	"slices"

	"github.com/Dosada05/swiss-tournament/models"
)

// ComputeStandings derives one entry per player from the match log, ranked
// by wins descending. Players with equal wins keep the order in which they
// appear in players, which the store returns in registration order.
//
// Matches naming an id that is not in players are skipped.
func ComputeStandings(players []*models.Player, matches []*models.Match) []models.StandingEntry {
	standings := make([]models.StandingEntry, 0, len(players))
	index := make(map[int]int, len(players))
	for _, p := range players {
		index[p.ID] = len(standings)
		standings = append(standings, models.StandingEntry{ID: p.ID, Name: p.Name})
	}

	for _, m := range matches {
		w, okW := index[m.WinnerID]
		l, okL := index[m.LoserID]
		if !okW || !okL {
			continue
		}
		standings[w].Wins++
		standings[w].Matches++
		standings[l].Matches++
	}

	slices.SortStableFunc(standings, func(a, b models.StandingEntry) int {
		return b.Wins - a.Wins
	})
	return standings
}

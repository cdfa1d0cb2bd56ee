package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

// ErrOddPlayerCount is returned when the standings cannot be split into pairs.
var ErrOddPlayerCount = errors.New("odd player count: every player needs an opponent")

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

func (g *SwissGenerator) GeneratePairings(_ context.Context, standings []models.StandingEntry) ([]models.Pairing, error) {
	return SwissPairings(standings)
}

// SwissPairings pairs adjacent players in rank order: 1 with 2, 3 with 4 and
// so on. Previous meetings are not considered, so a pair may be a rematch;
// see FindRematches.
func SwissPairings(standings []models.StandingEntry) ([]models.Pairing, error) {
	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrOddPlayerCount, len(standings))
	}

	pairings := make([]models.Pairing, 0, len(standings)/2)
	for i := 0; i+1 < len(standings); i += 2 {
		a, b := standings[i], standings[i+1]
		pairings = append(pairings, models.Pairing{
			ID1:   a.ID,
			Name1: a.Name,
			ID2:   b.ID,
			Name2: b.Name,
		})
	}
	return pairings, nil
}

// FindRematches returns the pairings whose two players already have a
// recorded match against each other, in pairing order.
func FindRematches(pairings []models.Pairing, matches []*models.Match) []models.Pairing {
	type key struct{ lo, hi int }
	norm := func(a, b int) key {
		if a > b {
			a, b = b, a
		}
		return key{a, b}
	}

	played := make(map[key]struct{}, len(matches))
	for _, m := range matches {
		played[norm(m.WinnerID, m.LoserID)] = struct{}{}
	}

	rematches := make([]models.Pairing, 0)
	for _, p := range pairings {
		if _, ok := played[norm(p.ID1, p.ID2)]; ok {
			rematches = append(rematches, p)
		}
	}
	return rematches
}

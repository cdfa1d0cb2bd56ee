package brackets

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

// PairingGenerator turns a ranked standings list into next-round pairings.
type PairingGenerator interface {
	GeneratePairings(ctx context.Context, standings []models.StandingEntry) ([]models.Pairing, error)

	GetName() string
}

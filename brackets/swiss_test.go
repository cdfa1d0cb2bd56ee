package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/models"
)

func TestSwissPairings(t *testing.T) {
	tests := []struct {
		name      string
		standings []models.StandingEntry
		want      []models.Pairing
		wantErr   error
	}{
		{
			name:      "empty standings",
			standings: nil,
			want:      []models.Pairing{},
		},
		{
			name:      "fresh tournament pairs by registration",
			standings: ComputeStandings(players("A", "B", "C", "D"), nil),
			want: []models.Pairing{
				{ID1: 1, Name1: "A", ID2: 2, Name2: "B"},
				{ID1: 3, Name1: "C", ID2: 4, Name2: "D"},
			},
		},
		{
			name: "after one round winners meet winners",
			standings: ComputeStandings(players("A", "B", "C", "D"),
				[]*models.Match{match(1, 2), match(3, 4)}),
			want: []models.Pairing{
				{ID1: 1, Name1: "A", ID2: 3, Name2: "C"},
				{ID1: 2, Name1: "B", ID2: 4, Name2: "D"},
			},
		},
		{
			name:      "odd count",
			standings: ComputeStandings(players("A", "B", "C", "D", "E"), nil),
			wantErr:   ErrOddPlayerCount,
		},
		{
			name:      "single player",
			standings: []models.StandingEntry{{ID: 7, Name: "solo"}},
			wantErr:   ErrOddPlayerCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SwissPairings(tt.standings)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSwissPairingsCoverEveryPlayerOnce(t *testing.T) {
	for n := 2; n <= 64; n += 2 {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			standings := make([]models.StandingEntry, 0, n)
			for i := 0; i < n; i++ {
				standings = append(standings, models.StandingEntry{ID: 100 + i, Name: fmt.Sprintf("p%d", i)})
			}

			got, err := SwissPairings(standings)
			require.NoError(t, err)
			require.Len(t, got, n/2)

			counts := make(map[int]int, n)
			for _, p := range got {
				counts[p.ID1]++
				counts[p.ID2]++
			}
			require.Len(t, counts, n)
			for _, s := range standings {
				assert.Equal(t, 1, counts[s.ID], "player %d", s.ID)
			}
		})
	}
}

func TestSwissGenerator(t *testing.T) {
	g := NewSwissGenerator()
	assert.Equal(t, "Swiss", g.GetName())

	got, err := g.GeneratePairings(context.Background(), ComputeStandings(players("A", "B"), nil))
	require.NoError(t, err)
	assert.Equal(t, []models.Pairing{{ID1: 1, Name1: "A", ID2: 2, Name2: "B"}}, got)
}

func TestFindRematches(t *testing.T) {
	pairings := []models.Pairing{
		{ID1: 1, Name1: "A", ID2: 3, Name2: "C"},
		{ID1: 2, Name1: "B", ID2: 4, Name2: "D"},
	}

	t.Run("none", func(t *testing.T) {
		got := FindRematches(pairings, []*models.Match{match(1, 2), match(3, 4)})
		assert.Empty(t, got)
	})

	t.Run("rematch in either direction", func(t *testing.T) {
		got := FindRematches(pairings, []*models.Match{match(1, 2), match(4, 2), match(3, 1)})
		assert.Equal(t, pairings, got)
	})
}

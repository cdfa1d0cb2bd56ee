package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/db/dbtest"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type recordingHub struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (h *recordingHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok && roomID == brackets.StandingsRoom {
		h.messages = append(h.messages, msg)
	}
}

func (h *recordingHub) last() brackets.WebSocketMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.messages[len(h.messages)-1]
}

type fixture struct {
	store       *repositories.Store
	hub         *recordingHub
	registry    *prometheus.Registry
	players     PlayerService
	matches     MatchService
	standings   StandingsService
	tournaments TournamentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, dbtest.Open(t))
}

func newFixtureOn(t *testing.T, conn *sql.DB) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repositories.NewStore(conn, db.DriverSQLite)
	hub := &recordingHub{}
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	return &fixture{
		store:       store,
		hub:         hub,
		registry:    registry,
		players:     NewPlayerService(store, hub, recorder, logger),
		matches:     NewMatchService(store, hub, recorder, logger),
		standings:   NewStandingsService(store, brackets.NewSwissGenerator(), recorder, logger),
		tournaments: NewTournamentService(store, hub, logger),
	}
}

func (f *fixture) register(t *testing.T, names ...string) []*models.Player {
	t.Helper()
	out := make([]*models.Player, 0, len(names))
	for _, n := range names {
		p, err := f.players.Register(context.Background(), n)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func (f *fixture) report(t *testing.T, winner, loser int) {
	t.Helper()
	_, err := f.matches.ReportMatch(context.Background(), winner, loser)
	require.NoError(t, err)
}

// counterValue sums every series of the named counter family.
func (f *fixture) counterValue(t *testing.T, name string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

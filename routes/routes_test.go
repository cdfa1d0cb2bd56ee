package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/db/dbtest"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
)

const organizerPassword = "s3cret"

type testServer struct {
	*httptest.Server
	store *repositories.Store
	hub   *brackets.Hub
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repositories.NewStore(dbtest.Open(t), db.DriverSQLite)
	hub := brackets.NewHub(logger)
	go hub.Run(ctx)
	recorder := metrics.NewRecorder(prometheus.NewRegistry())

	uploader, err := storage.NewLocalUploader(t.TempDir(), "http://files.test")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(organizerPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authService := services.NewAuthService(string(hash), "routes-test-secret")

	playerService := services.NewPlayerService(store, hub, recorder, logger)
	matchService := services.NewMatchService(store, hub, recorder, logger)
	standingsService := services.NewStandingsService(store, nil, recorder, logger)
	tournamentService := services.NewTournamentService(store, hub, logger)
	exportService := services.NewExportService(store, uploader, recorder, logger)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Players:    handlers.NewPlayerHandler(playerService, tournamentService),
		Matches:    handlers.NewMatchHandler(matchService, tournamentService),
		Standings:  handlers.NewStandingsHandler(standingsService),
		Tournament: handlers.NewTournamentHandler(tournamentService, exportService),
		WebSocket:  handlers.NewWebSocketHandler(hub, standingsService, []string{"*"}, logger),
		Health:     handlers.NewHealthHandler(store),
	}, Options{
		Verifier:           authService,
		Metrics:            recorder,
		CORSAllowedOrigins: []string{"*"},
		RequestTimeout:     5 * time.Second,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	ts := &testServer{Server: srv, store: store, hub: hub}
	var login handlers.LoginResponse
	ts.do(t, http.MethodPost, "/auth/login", map[string]string{"password": organizerPassword}, http.StatusOK, &login)
	require.NotEmpty(t, login.Token)
	ts.token = login.Token
	return ts
}

// do sends body as JSON with the organizer token and decodes the reply into out.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()
	s.doAs(t, s.token, method, path, body, wantStatus, out)
}

func (s *testServer) doAs(t *testing.T, token, method, path string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
}

func TestTournamentRoundTrip(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"A", "B", "C", "D"} {
		var p models.Player
		s.do(t, http.MethodPost, "/players", map[string]string{"name": name}, http.StatusCreated, &p)
		assert.Equal(t, name, p.Name)
	}

	var count map[string]int
	s.do(t, http.MethodGet, "/players/count", nil, http.StatusOK, &count)
	assert.Equal(t, 4, count["count"])

	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 1, "loser": 2}, http.StatusCreated, nil)
	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 3, "loser": 4}, http.StatusCreated, nil)

	var standings map[string][]models.StandingEntry
	s.do(t, http.MethodGet, "/standings", nil, http.StatusOK, &standings)
	assert.Equal(t, []models.StandingEntry{
		{ID: 1, Name: "A", Wins: 1, Matches: 1},
		{ID: 3, Name: "C", Wins: 1, Matches: 1},
		{ID: 2, Name: "B", Wins: 0, Matches: 1},
		{ID: 4, Name: "D", Wins: 0, Matches: 1},
	}, standings["standings"])

	var plan models.RoundPlan
	s.do(t, http.MethodGet, "/pairings", nil, http.StatusOK, &plan)
	assert.Equal(t, []models.Pairing{
		{ID1: 1, Name1: "A", ID2: 3, Name2: "C"},
		{ID1: 2, Name1: "B", ID2: 4, Name2: "D"},
	}, plan.Pairings)
	assert.Empty(t, plan.Rematches)

	var matches map[string][]models.Match
	s.do(t, http.MethodGet, "/matches", nil, http.StatusOK, &matches)
	assert.Len(t, matches["matches"], 2)

	var reset services.ResetResult
	s.do(t, http.MethodPost, "/tournament/reset", nil, http.StatusOK, &reset)
	assert.Equal(t, services.ResetResult{MatchesDeleted: 2, PlayersDeleted: 4}, reset)
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"A", "B", "C"} {
		s.do(t, http.MethodPost, "/players", map[string]string{"name": name}, http.StatusCreated, nil)
	}

	var body map[string]string
	s.do(t, http.MethodGet, "/pairings", nil, http.StatusConflict, &body)
	assert.Contains(t, body["error"], "odd")

	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 1, "loser": 1}, http.StatusBadRequest, nil)
	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 1, "loser": 42}, http.StatusBadRequest, nil)
	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 1}, http.StatusBadRequest, nil)
	s.do(t, http.MethodPost, "/players", map[string]string{"name": "   "}, http.StatusBadRequest, nil)

	s.do(t, http.MethodPost, "/matches", map[string]int{"winner": 2, "loser": 3}, http.StatusCreated, nil)
	s.do(t, http.MethodDelete, "/players", nil, http.StatusConflict, nil)
	s.do(t, http.MethodDelete, "/matches", nil, http.StatusOK, nil)
	s.do(t, http.MethodDelete, "/players", nil, http.StatusOK, nil)

	s.do(t, http.MethodPost, "/auth/login", map[string]string{"password": "nope"}, http.StatusUnauthorized, nil)
}

func TestWritesRequireOrganizer(t *testing.T) {
	s := newTestServer(t)

	s.doAs(t, "", http.MethodPost, "/players", map[string]string{"name": "A"}, http.StatusUnauthorized, nil)
	s.doAs(t, "garbage", http.MethodPost, "/tournament/reset", nil, http.StatusUnauthorized, nil)
	s.doAs(t, "", http.MethodGet, "/standings", nil, http.StatusOK, nil)
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/players", map[string]string{"name": "A"}, http.StatusCreated, nil)

	var res map[string][]services.ExportArtifact
	s.do(t, http.MethodPost, "/exports", map[string][]string{"formats": {"json", "csv"}}, http.StatusCreated, &res)
	require.Len(t, res["artifacts"], 2)
	assert.True(t, strings.HasPrefix(res["artifacts"][0].Location, "http://files.test/standings/"))

	s.do(t, http.MethodPost, "/exports", map[string][]string{"formats": {"pdf"}}, http.StatusBadRequest, nil)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/healthz", nil, http.StatusOK, nil)

	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `swiss_http_request_duration_seconds_count{method="POST",route="/auth/login",status="200"} 1`)

	require.NoError(t, s.store.DB.Close())
	s.do(t, http.MethodGet, "/healthz", nil, http.StatusServiceUnavailable, nil)
	s.do(t, http.MethodGet, "/standings", nil, http.StatusServiceUnavailable, nil)
}

func TestStandingsWebSocketFeed(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/players", map[string]string{"name": "A"}, http.StatusCreated, nil)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(s.URL, "http")+"/ws/standings", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() brackets.WebSocketMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg struct {
			Type    string                 `json:"type"`
			Payload []models.StandingEntry `json:"payload"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		return brackets.WebSocketMessage{Type: msg.Type, Payload: msg.Payload}
	}

	initial := read()
	assert.Equal(t, brackets.MessageStandingsUpdated, initial.Type)
	assert.Len(t, initial.Payload, 1)

	require.Eventually(t, func() bool {
		return s.hub.RoomSize(brackets.StandingsRoom) == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.do(t, http.MethodPost, "/players", map[string]string{"name": "B"}, http.StatusCreated, nil)
	update := read()
	assert.Equal(t, brackets.MessageStandingsUpdated, update.Type)
	assert.Len(t, update.Payload, 2)
}

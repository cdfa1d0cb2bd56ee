package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/services"
)

type WebSocketHandler struct {
	hub              *brackets.Hub
	standingsService services.StandingsService
	upgrader         websocket.Upgrader
	logger           *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any
// origin, an empty list only same-origin requests.
func NewWebSocketHandler(hub *brackets.Hub, ss services.StandingsService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:              hub,
		standingsService: ss,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return set[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// ServeWs subscribes the connection to standings updates. The current
// standings are sent first so clients never start from an empty table.
// @Summary      Live standings feed
// @Description  WebSocket. Messages are {"type": "STANDINGS_UPDATED"|"TOURNAMENT_RESET", "payload": [StandingEntry]}.
// @Tags         standings
// @Router       /ws/standings [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	initial, err := h.standingsService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже отправил клиенту HTTP-ошибку.
		h.logger.Warn("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.StandingsRoom,
	}

	if snapshot, err := json.Marshal(brackets.WebSocketMessage{
		Type:    brackets.MessageStandingsUpdated,
		Payload: initial,
		RoomID:  brackets.StandingsRoom,
	}); err == nil {
		client.Send <- snapshot
	}

	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("standings subscriber connected", slog.String("remote_addr", r.RemoteAddr))
}

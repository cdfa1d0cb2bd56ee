package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Broadcaster pushes a message to every subscriber of a room. *brackets.Hub
// satisfies it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// standingsNotifier publishes fresh standings after a write. Publishing is
// best effort: the write has already committed, so failures are only logged.
type standingsNotifier struct {
	store  *repositories.Store
	hub    Broadcaster
	logger *slog.Logger
}

func (n standingsNotifier) publish(ctx context.Context, messageType string) {
	if n.hub == nil {
		return
	}
	players, matches, err := n.store.Snapshot(ctx)
	if err != nil {
		n.logger.Warn("skipping standings broadcast", slog.String("type", messageType), slog.Any("error", err))
		return
	}
	n.hub.BroadcastToRoom(brackets.StandingsRoom, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: brackets.ComputeStandings(players, matches),
		RoomID:  brackets.StandingsRoom,
	})
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

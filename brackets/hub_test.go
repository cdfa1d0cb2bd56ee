package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	subscriber := &Client{Hub: hub, Send: make(chan []byte, 4), Room: StandingsRoom}
	other := &Client{Hub: hub, Send: make(chan []byte, 4), Room: "elsewhere"}
	hub.Register <- subscriber
	hub.Register <- other
	require.Eventually(t, func() bool {
		return hub.RoomSize(StandingsRoom) == 1 && hub.RoomSize("elsewhere") == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(StandingsRoom, WebSocketMessage{Type: MessageStandingsUpdated, Payload: []int{1, 2}})

	select {
	case raw := <-subscriber.Send:
		var msg struct {
			Type    string `json:"type"`
			Payload []int  `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageStandingsUpdated, msg.Type)
		assert.Equal(t, []int{1, 2}, msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive broadcast")
	}
	assert.Empty(t, other.Send)

	hub.Unregister <- subscriber
	require.Eventually(t, func() bool { return hub.RoomSize(StandingsRoom) == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-subscriber.Send
	assert.False(t, open, "send channel is closed on unregister")
}

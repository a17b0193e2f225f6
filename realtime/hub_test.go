package realtime

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

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestTournamentRoom(t *testing.T) {
	assert.Equal(t, "tournament_42", TournamentRoom(42))
}

func TestBroadcastToRoomReachesOnlyRoomMembers(t *testing.T) {
	hub, _ := newTestHub(t)

	inRoom := NewClient(hub, nil, TournamentRoom(1))
	otherRoom := NewClient(hub, nil, TournamentRoom(2))
	require.True(t, hub.Register(inRoom))
	require.True(t, hub.Register(otherRoom))
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom(1)) == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(TournamentRoom(1), Message{Type: MessageMatchUpdated, Payload: map[string]int{"id": 7}, RoomID: TournamentRoom(1)})

	select {
	case raw := <-inRoom.Messages():
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageMatchUpdated, msg.Type)
		assert.Equal(t, "tournament_1", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}

	select {
	case <-otherRoom.Messages():
		t.Fatal("message leaked into another room")
	default:
	}
}

func TestUnregisterClosesClientAndRoom(t *testing.T) {
	hub, _ := newTestHub(t)

	client := NewClient(hub, nil, TournamentRoom(3))
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom(3)) == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom(3)) == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.Messages()
	assert.False(t, ok)

	// broadcasting to an empty room is a no-op
	hub.BroadcastToRoom(TournamentRoom(3), Message{Type: MessageMatchDeleted})
}

func TestBroadcastDoesNotBlockOnFullBuffer(t *testing.T) {
	hub, _ := newTestHub(t)

	client := NewClient(hub, nil, TournamentRoom(4))
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.RoomSize(TournamentRoom(4)) == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBufferSize+10; i++ {
			hub.BroadcastToRoom(TournamentRoom(4), Message{Type: MessageLeaderboardUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
	assert.Len(t, client.Messages(), sendBufferSize)
}

func TestStoppedHubRejectsRegistration(t *testing.T) {
	hub, cancel := newTestHub(t)

	client := NewClient(hub, nil, TournamentRoom(5))
	require.True(t, hub.Register(client))
	cancel()

	_, ok := <-client.Messages()
	assert.False(t, ok)

	assert.False(t, hub.Register(NewClient(hub, nil, TournamentRoom(5))))
	hub.Unregister(client)
}

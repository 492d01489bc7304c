package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(room, handle string) *Client {
	return &Client{
		Send:   make(chan []byte, 8),
		Room:   room,
		Handle: handle,
	}
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	sender := newTestClient("X", "alice")
	peer := newTestClient("X", "bob")
	other := newTestClient("Y", "carol")

	hub.Register <- sender
	hub.Register <- peer
	hub.Register <- other

	hub.broadcast <- frame{room: "X", sender: sender, payload: []byte("hello")}

	// peer receiving proves the broadcast was fully processed; after that,
	// neither the sender nor the room-Y client may hold anything.
	assert.Equal(t, []byte("hello"), recv(t, peer))
	assert.Len(t, sender.Send, 0, "sender must not receive its own broadcast")
	assert.Len(t, other.Send, 0, "other rooms must not receive the broadcast")
}

func TestHubRoomLifecycle(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := newTestClient("X", "alice")
	b := newTestClient("X", "bob")

	hub.Register <- a
	hub.Register <- b
	require.Equal(t, 2, hub.RoomSize("X"))

	hub.Unregister <- a
	require.Equal(t, 1, hub.RoomSize("X"))

	// Last member leaving tears the room down.
	hub.Unregister <- b
	require.Equal(t, 0, hub.RoomSize("X"))

	// Unregister closes the write channel so the pump stops.
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHubUnregisterUnknownClient(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := newTestClient("X", "alice")
	hub.Register <- a

	// A client that never joined must not disturb room state.
	stranger := newTestClient("X", "mallory")
	hub.Unregister <- stranger

	require.Equal(t, 1, hub.RoomSize("X"))
}

type fakePresence struct {
	joins  chan string
	leaves chan string
}

func (p *fakePresence) Join(_ context.Context, handle string)  { p.joins <- handle }
func (p *fakePresence) Leave(_ context.Context, handle string) { p.leaves <- handle }

func TestHubPresenceHooks(t *testing.T) {
	p := &fakePresence{joins: make(chan string, 4), leaves: make(chan string, 4)}
	hub := NewHub(p)
	go hub.Run()

	a := newTestClient("X", "alice")
	hub.Register <- a
	assert.Equal(t, "alice", <-p.joins)

	hub.Unregister <- a
	assert.Equal(t, "alice", <-p.leaves)
}

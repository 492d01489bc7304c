// Package relay is the real-time fan-out channel. Connections join exactly
// one room for their lifetime; payloads are broadcast unmodified to the other
// members of that room. Nothing here is persisted — durable storage is the
// conversation store's job, invoked by the HTTP caller, not by the relay.
package relay

import "context"

// Presence receives room lifecycle events. The hub tolerates a nil Presence.
type Presence interface {
	Join(ctx context.Context, handle string)
	Leave(ctx context.Context, handle string)
}

type frame struct {
	room    string
	sender  *Client
	payload []byte
}

type countReq struct {
	room string
	resp chan int
}

// Hub owns all room state. A single goroutine runs the loop and is the only
// thing that touches h.rooms, so no locking is needed.
type Hub struct {
	rooms map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	broadcast  chan frame
	counts     chan countReq

	presence Presence
}

func NewHub(presence Presence) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan frame),
		counts:     make(chan countReq),
		presence:   presence,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			members, ok := h.rooms[client.Room]
			if !ok {
				members = make(map[*Client]bool)
				h.rooms[client.Room] = members
			}
			members[client] = true
			if h.presence != nil {
				h.presence.Join(context.Background(), client.Handle)
			}

		case client := <-h.Unregister:
			if members, ok := h.rooms[client.Room]; ok {
				if _, ok := members[client]; ok {
					delete(members, client)
					close(client.Send)
					if len(members) == 0 {
						delete(h.rooms, client.Room)
					}
					if h.presence != nil {
						h.presence.Leave(context.Background(), client.Handle)
					}
				}
			}

		case f := <-h.broadcast:
			for client := range h.rooms[f.room] {
				if client == f.sender {
					continue
				}
				select {
				case client.Send <- f.payload:
				default:
					close(client.Send)
					delete(h.rooms[f.room], client)
					if len(h.rooms[f.room]) == 0 {
						delete(h.rooms, f.room)
					}
				}
			}

		case req := <-h.counts:
			req.resp <- len(h.rooms[req.room])
		}
	}
}

// RoomSize reports the current membership of a room. Zero means the room does
// not exist.
func (h *Hub) RoomSize(room string) int {
	resp := make(chan int, 1)
	h.counts <- countReq{room: room, resp: resp}
	return <-resp
}

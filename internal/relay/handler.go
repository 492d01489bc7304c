package relay

import (
	"log/slog"
	"net/http"

	"chatlink/internal/httpx"
	"chatlink/internal/middleware"
	"chatlink/pkg/apperr"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins once the frontend host is fixed
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ServeWs runs the join handshake. The room identifier is required and is
// checked before the upgrade; a connection without one never reaches the hub.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		httpx.Error(w, apperr.InvalidArg("invalid room"))
		return
	}

	handle, _ := r.Context().Value(middleware.HandleKey).(string)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "err", err)
		return
	}

	client := &Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Room:   room,
		Handle: handle,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// Package presence tracks which identities currently hold a live relay
// connection. Markers are TTL-keyed in Redis so a crashed server cannot leave
// anyone online forever.
package presence

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chatlink/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

const markerTTL = 5 * time.Minute

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(handle string) string {
	return "presence:" + handle
}

// Join marks the identity online. Best-effort: a Redis failure is logged,
// never surfaced to the relay.
func (s *Store) Join(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	if err := s.rdb.Set(ctx, key(handle), "online", markerTTL).Err(); err != nil {
		slog.Error("presence join", "handle", handle, "err", err)
	}
}

func (s *Store) Leave(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	if err := s.rdb.Del(ctx, key(handle)).Err(); err != nil {
		slog.Error("presence leave", "handle", handle, "err", err)
	}
}

func (s *Store) IsOnline(ctx context.Context, handle string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(handle)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	online, err := h.store.IsOnline(r.Context(), handle)
	if err != nil {
		slog.Error("presence lookup", "handle", handle, "err", err)
		online = false
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"handle": handle,
		"online": online,
	})
}

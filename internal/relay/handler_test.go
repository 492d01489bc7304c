package relay

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeWsRejectsMissingRoom(t *testing.T) {
	hub := NewHub(nil)
	h := NewHandler(hub)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()

	h.ServeWs(rec, req)

	// The handshake fails before any upgrade or room join.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid room")
}

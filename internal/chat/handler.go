package chat

import (
	"net/http"

	"chatlink/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	msg, err := h.Service.AppendMessage(r.Context(), req.Sender, req.Receiver, req.Content)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *Handler) PreviousMessages(w http.ResponseWriter, r *http.Request) {
	a := chi.URLParam(r, "a")
	b := chi.URLParam(r, "b")

	msgs, err := h.Service.History(r.Context(), a, b)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

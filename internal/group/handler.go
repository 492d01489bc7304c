package group

import (
	"net/http"

	"chatlink/internal/chat"
	"chatlink/internal/httpx"
	"chatlink/internal/middleware"
	"chatlink/pkg/apperr"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	g, err := h.Service.Create(r.Context(), req.Name, req.Admin)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "group created successfully",
		"group":   g,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	groups, err := h.Service.ListByMember(r.Context(), handle)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if groups == nil {
		groups = []Group{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req UpdateBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	g, err := h.Service.Rename(r.Context(), name, req.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "group updated successfully",
		"group":   g,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Service.Delete(r.Context(), name); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"message": "group deleted successfully"})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	groups, err := h.Service.Search(r.Context(), query)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if groups == nil {
		groups = []Profile{}
	}
	httpx.JSON(w, http.StatusOK, groups)
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req MembershipBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.Service.Join(r.Context(), req.Name, req.Handle); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"message": "joined group successfully"})
}

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	var req MembershipBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.Service.Leave(r.Context(), req.Name, req.Handle); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"message": "left group successfully"})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), req.Name, req.Sender, req.Content)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	requester, ok := r.Context().Value(middleware.HandleKey).(string)
	if !ok || requester == "" {
		httpx.Error(w, apperr.ErrInvalidToken)
		return
	}

	msgs, err := h.Service.History(r.Context(), name, requester)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

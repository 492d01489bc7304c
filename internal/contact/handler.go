package contact

import (
	"net/http"

	"chatlink/internal/httpx"
	"chatlink/internal/user"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req SendRequestBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	alreadyPending, err := h.Service.SendRequest(r.Context(), req.Sender, req.Receiver)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	msg := "message request sent successfully"
	if alreadyPending {
		msg = "message request already pending"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":        msg,
		"alreadyPending": alreadyPending,
	})
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	var req AcceptRequestBody
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	convID, err := h.Service.AcceptRequest(r.Context(), req.CurrentUser, req.RequestedUser)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":          "message request accepted successfully",
		"privateMessageId": convID,
	})
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	pending, err := h.Service.ListPending(r.Context(), handle)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if pending == nil {
		pending = []user.Profile{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notifications": pending})
}

func (h *Handler) ConnectedUsers(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	friends, err := h.Service.ListFriends(r.Context(), handle)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if friends == nil {
		friends = []Friend{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"connectedUsers": friends})
}

package user

import (
	"net/http"
	"time"

	"chatlink/internal/httpx"
	"chatlink/internal/middleware"
	"chatlink/pkg/apperr"
)

type Handler struct {
	Service  *Service
	tokenTTL time.Duration
}

func NewHandler(s *Service, tokenTTL time.Duration) *Handler {
	return &Handler{Service: s, tokenTTL: tokenTTL}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	res, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "user created successfully",
		"user":    res,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	res, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    res.AccessToken,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "logged in successfully",
		"user":    res,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// Stateless token: expire the cookie client-side, nothing to revoke.
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "logout successful",
		"success": true,
	})
}

// Me returns the identity decoded from the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserKey).(int)
	handle, ok2 := r.Context().Value(middleware.HandleKey).(string)
	if !ok || !ok2 || handle == "" {
		httpx.Error(w, apperr.ErrInvalidToken)
		return
	}
	image, _ := r.Context().Value(middleware.ImageKey).(string)

	httpx.JSON(w, http.StatusOK, MeResponse{
		UserID:       userID,
		Handle:       handle,
		ProfileImage: image,
	})
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	users, err := h.Service.SearchUsers(r.Context(), query)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if users == nil {
		users = []Profile{}
	}
	httpx.JSON(w, http.StatusOK, users)
}

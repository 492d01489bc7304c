package middleware

import (
	"context"
	"net/http"
	"strings"

	"chatlink/internal/httpx"
	"chatlink/pkg/apperr"
)

type contextKey string

const (
	UserKey   contextKey = "user_id"
	HandleKey contextKey = "handle"
	ImageKey  contextKey = "profile_image"
)

// TokenValidator is what we need from the user service; the interface keeps
// this package decoupled from it.
type TokenValidator interface {
	ValidateToken(tokenString string) (int, string, string, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(v TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: v}
}

// Handle resolves the bearer credential from the accessToken cookie, the
// Authorization header, or a token query parameter (websocket clients cannot
// set headers), validates it, and injects the identity into the context.
func (am *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		if c, err := r.Cookie("accessToken"); err == nil {
			tokenString = c.Value
		}

		if tokenString == "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 {
					tokenString = parts[1]
				}
			}
		}

		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}

		if tokenString == "" {
			httpx.Error(w, apperr.Unauthorized("missing authentication token"))
			return
		}

		userID, handle, image, err := am.validator.ValidateToken(tokenString)
		if err != nil {
			httpx.Error(w, apperr.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, userID)
		ctx = context.WithValue(ctx, HandleKey, handle)
		ctx = context.WithValue(ctx, ImageKey, image)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

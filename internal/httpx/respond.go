// Package httpx holds the shared request/response plumbing: JSON rendering,
// validated request decoding, and the apperr-to-status mapping.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"chatlink/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeValid decodes a JSON body into dst and runs struct validation.
// Any failure is an INVALID_ARGUMENT.
func DecodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, "malformed request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, "invalid request: "+err.Error(), err)
	}
	return nil
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}

type errorBody struct {
	Message string      `json:"message"`
	Code    apperr.Code `json:"code"`
}

// Error renders a domain error. Non-AppError causes are treated as internal:
// logged in full, reported generically.
func Error(w http.ResponseWriter, err error) {
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		slog.Error("unclassified error", "err", err)
		JSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error", Code: apperr.CodeInternal})
		return
	}
	if ae.Code == apperr.CodeInternal {
		slog.Error("internal error", "err", ae)
		JSON(w, http.StatusInternalServerError, errorBody{Message: ae.Message, Code: ae.Code})
		return
	}
	JSON(w, statusOf(ae.Code), errorBody{Message: ae.Message, Code: ae.Code})
}

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

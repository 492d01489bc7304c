package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatlink/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.InvalidArg("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("who"), http.StatusUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.AlreadyExists("dup"), http.StatusConflict},
		{apperr.Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestErrorHidesUnclassifiedDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestDecodeValid(t *testing.T) {
	type body struct {
		Handle string `json:"handle" validate:"required,min=3"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"handle":"alice"}`))
		var b body
		require.NoError(t, DecodeValid(req, &b))
		assert.Equal(t, "alice", b.Handle)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var b body
		err := DecodeValid(req, &b)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("fails validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"handle":"ab"}`))
		var b body
		err := DecodeValid(req, &b)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})
}

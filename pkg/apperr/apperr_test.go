package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("gone")))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, "internal server error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", ErrNoPrivateThread)
	assert.Equal(t, CodePermissionDenied, CodeOf(err))
	assert.ErrorIs(t, err, ErrNoPrivateThread)
}

func TestSentinelMessages(t *testing.T) {
	// Sentinels are compared with errors.Is all over the services; they must
	// stay distinct values.
	assert.NotErrorIs(t, ErrUserNotFound, ErrGroupNotFound)
	assert.Equal(t, "user not found", ErrUserNotFound.Error())
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus Status
		wantCode   int
	}{
		{"validation", NewValidationError("Require Email"), StatusFailed, http.StatusUnprocessableEntity},
		{"bad request", NewBadRequestError("Require User Data"), StatusFailed, http.StatusBadRequest},
		{"not found", NewNotFoundError("User Not Found"), StatusFailed, http.StatusNotFound},
		{"conflict", NewConflictError("Email already found, Enter another email"), StatusFailed, http.StatusConflict},
		{"internal", NewInternalError("connection refused"), StatusError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.StatusCode)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestWithMessageCopies(t *testing.T) {
	original := NewNotFoundError("User Not Found")
	reworded := original.WithMessage("Invalid User ID")

	assert.Equal(t, "User Not Found", original.Message)
	assert.Equal(t, "Invalid User ID", reworded.Message)
	assert.Equal(t, original.StatusCode, reworded.StatusCode)
	assert.Equal(t, original.Status, reworded.Status)
}

func TestIsMatchesAnyAppError(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewConflictError("duplicate"))

	assert.True(t, errors.Is(wrapped, &Error{}))
	assert.False(t, errors.Is(errors.New("plain"), &Error{}))
}

func TestStatusHelpers(t *testing.T) {
	notFound := fmt.Errorf("wrapped: %w", NewNotFoundError("User Not Found"))
	conflict := NewConflictError("duplicate")

	require.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))
	assert.True(t, IsConflict(conflict))
	assert.False(t, IsConflict(errors.New("plain")))
}

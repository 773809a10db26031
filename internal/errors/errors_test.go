package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("formats code and message", func(t *testing.T) {
		err := New(ErrCodeNotFound, "Blog post not found")
		assert.Equal(t, "NOT_FOUND: Blog post not found", err.Error())
	})

	t.Run("includes cause in message", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(ErrCodeDatabase, "Database error", cause)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("unwraps to cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := Database(cause)
		assert.ErrorIs(t, err, cause)
	})
}

func TestMissingFields(t *testing.T) {
	err := MissingFields([]string{"title", "content"})

	assert.Equal(t, ErrCodeValidation, err.Code)
	details, ok := err.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "content"}, details["missingFields"])
}

func TestAsAppError(t *testing.T) {
	t.Run("finds AppError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NotFound("News article"))
		appErr, ok := AsAppError(wrapped)
		require.True(t, ok)
		assert.Equal(t, ErrCodeNotFound, appErr.Code)
	})

	t.Run("plain error is not AppError", func(t *testing.T) {
		_, ok := AsAppError(errors.New("plain"))
		assert.False(t, ok)
	})
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeConflict, GetCode(Conflict("already decided")))
	assert.Equal(t, ErrCodeInternal, GetCode(errors.New("unknown")))
}

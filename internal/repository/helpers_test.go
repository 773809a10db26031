package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleNotFound(t *testing.T) {
	t.Run("no rows becomes nil without error", func(t *testing.T) {
		value := 42
		result, err := HandleNotFound(&value, sql.ErrNoRows)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		value := 42
		_, err := HandleNotFound(&value, errors.New("connection reset"))
		assert.Error(t, err)
	})

	t.Run("success returns the value", func(t *testing.T) {
		value := 42
		result, err := HandleNotFound(&value, nil)
		require.NoError(t, err)
		assert.Equal(t, 42, *result)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches duplicate key errors", func(t *testing.T) {
		assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	})

	t.Run("matches wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("insert blog: %w", &pq.Error{Code: "23505"})
		assert.True(t, IsUniqueViolation(wrapped))
	})

	t.Run("ignores other postgres errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("boom")))
		assert.False(t, IsUniqueViolation(nil))
	})
}

func TestUniqueConstraint(t *testing.T) {
	t.Run("names the violated constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "blogs_pkey"}
		assert.Equal(t, "blogs_pkey", UniqueConstraint(err))
	})

	t.Run("matches wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("insert news: %w", &pq.Error{Code: "23505", Constraint: "news_slug_key"})
		assert.Equal(t, "news_slug_key", UniqueConstraint(wrapped))
	})

	t.Run("empty for anything else", func(t *testing.T) {
		assert.Empty(t, UniqueConstraint(&pq.Error{Code: "23503", Constraint: "fk"}))
		assert.Empty(t, UniqueConstraint(errors.New("boom")))
		assert.Empty(t, UniqueConstraint(nil))
	})
}

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimitMiddleware(t *testing.T) {
	t.Run("passes small bodies through", func(t *testing.T) {
		handler := NewBodyLimitMiddleware(64).Handler(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/onboard", bytes.NewReader([]byte("small")))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized declared bodies", func(t *testing.T) {
		handler := NewBodyLimitMiddleware(16).Handler(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/onboard", bytes.NewReader(make([]byte, 64)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("zero max falls back to the default", func(t *testing.T) {
		m := NewBodyLimitMiddleware(0)
		assert.Equal(t, int64(DefaultMaxBodySize), m.maxSize)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	t.Run("sets baseline headers", func(t *testing.T) {
		handler := NewSecurityHeadersMiddleware(false).Handler(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("adds HSTS in production", func(t *testing.T) {
		handler := NewSecurityHeadersMiddleware(true).Handler(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age")
	})
}

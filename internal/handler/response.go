package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeJSON parses the request body into dst and maps malformed payloads to
// an invalid input error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("body", "malformed JSON")
	}
	return nil
}

// idParam reads the {id} route parameter and rejects non-numeric values
// before they ever reach the database.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidInput("id", "must be numeric")
	}
	return id, nil
}

func slugParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "slug"))
	if raw == "" {
		return "", apperrors.InvalidInput("slug", "must not be empty")
	}
	return raw, nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}

package middleware

import (
	"net/http"

	"github.com/atelierhq/studio-api/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atelierhq/studio-api/internal/audit"
	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/httputil"
	"github.com/atelierhq/studio-api/internal/service"
	"github.com/atelierhq/studio-api/internal/session"
)

type contextKey string

const SessionContextKey contextKey = "session"

func GetSession(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(SessionContextKey).(*session.Session); ok {
		return sess
	}
	return nil
}

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Handler validates the bearer token (signature, role claim and session
// store) and attaches the session to the request context.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractBearer(r)
		if token == "" {
			err := apperrors.Unauthorized("Missing authentication token")
			audit.Log(audit.Entry{Event: audit.EventAuthFailure, IP: r.RemoteAddr, Detail: string(apperrors.GetCode(err))})
			httputil.WriteError(w, err)
			return
		}

		sess, err := m.auth.Validate(r.Context(), token)
		if err != nil {
			audit.Log(audit.Entry{Event: audit.EventAuthFailure, IP: r.RemoteAddr, Detail: string(apperrors.GetCode(err))})
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractBearer pulls the token from the Authorization header. A missing or
// malformed header yields the empty string.
func ExtractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

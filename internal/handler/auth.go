package handler

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-api/internal/audit"
	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/middleware"
	"github.com/atelierhq/studio-api/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionInfo struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type loginResponse struct {
	Token       string      `json:"token"`
	ExpiresIn   int64       `json:"expiresIn"`
	SessionInfo sessionInfo `json:"sessionInfo"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		writeError(w, apperrors.MissingFields(missing))
		return
	}

	meta := service.ClientMeta{
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
	}
	result, err := h.auth.Login(r.Context(), req.Username, req.Password, meta)
	if err != nil {
		audit.Log(audit.Entry{Event: audit.EventLoginFailure, Username: req.Username, IP: meta.IP})
		writeError(w, err)
		return
	}

	audit.Log(audit.Entry{Event: audit.EventLoginSuccess, Username: req.Username, IP: meta.IP})
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresIn: int64(time.Until(result.ExpiresAt).Seconds()),
		SessionInfo: sessionInfo{
			Username:  result.Session.Username,
			CreatedAt: result.Session.CreatedAt,
			ExpiresAt: result.Session.ExpiresAt,
		},
	})
}

// Logout is public and idempotent: a request without a usable token still
// succeeds, so clients can always clear local state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearer(r)
	if token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			writeError(w, err)
			return
		}
		audit.Log(audit.Entry{Event: audit.EventLogout, IP: clientIP(r)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

// ValidateToken runs behind the auth middleware; reaching it means the token
// and session already checked out.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"username": sess.Username,
	})
}

func (h *AuthHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	expiresAt, err := h.auth.Refresh(r.Context(), sess.TokenHash)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"expiresAt": expiresAt,
	})
}

func (h *AuthHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"username":     sess.Username,
		"createdAt":    sess.CreatedAt,
		"lastActivity": sess.LastActivity,
		"expiresAt":    sess.ExpiresAt,
		"userAgent":    sess.UserAgent,
		"ip":           sess.IP,
	})
}

// Package session holds server-side session state behind a swappable Store
// interface: an in-memory table for single-instance deployments and a Redis
// backend for anything that must survive restarts or span instances.
package session

import (
	"context"
	"time"
)

// Session binds a bearer token (stored as its SHA-256 hash) to an identity
// and an expiry, independent of the token's own signature.
type Session struct {
	TokenHash    string    `json:"-"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	UserAgent    string    `json:"userAgent,omitempty"`
	IP           string    `json:"ip,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type Store interface {
	// Get returns the session for a token hash, or nil when absent.
	// Backends do not check expiry; callers decide what an expired
	// session means.
	Get(ctx context.Context, tokenHash string) (*Session, error)
	// Save inserts or replaces a session keyed by its token hash.
	Save(ctx context.Context, sess *Session) error
	// Delete is idempotent.
	Delete(ctx context.Context, tokenHash string) error
	// DeleteByUsername evicts every session held for a username.
	DeleteByUsername(ctx context.Context, username string) (int64, error)
	// DeleteExpired removes sessions past their expiry. Advisory
	// housekeeping; expired sessions are also rejected lazily on use.
	DeleteExpired(ctx context.Context) (int64, error)
}

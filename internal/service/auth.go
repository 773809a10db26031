package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/session"
	"github.com/atelierhq/studio-api/internal/util"
)

const adminRole = "admin"

// AuthClaims is the signed payload of a bearer token. Expiry is deliberately
// not a claim: the session store is the single authority on token lifetime so
// refresh can extend a session without reissuing the token value.
type AuthClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type ClientMeta struct {
	UserAgent string
	IP        string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   *session.Session
}

// AuthService accepts exactly one credential pair. The session store and the
// token signature are checked independently: a forged token never reaches the
// store, and a signed token without a live session is rejected.
type AuthService struct {
	store        session.Store
	username     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

func NewAuthService(store session.Store, username, passwordHash, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:        store,
		username:     username,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		ttl:          ttl,
	}
}

// Login verifies the credential pair, evicts any prior session for the
// username and mints a fresh signed token with a new session record.
func (s *AuthService) Login(ctx context.Context, username, password string, meta ClientMeta) (*LoginResult, error) {
	if username != s.username || !util.CheckPasswordHash(password, s.passwordHash) {
		return nil, apperrors.Unauthorized("Invalid username or password")
	}

	// One live session per username: a second login kills the first.
	if _, err := s.store.DeleteByUsername(ctx, username); err != nil {
		return nil, apperrors.Database(err)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := AuthClaims{
		Username: username,
		Role:     adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign token").WithCause(err)
	}

	sess := &session.Session{
		TokenHash:    util.HashToken(token),
		UserID:       username,
		Username:     username,
		UserAgent:    meta.UserAgent,
		IP:           meta.IP,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    expiresAt,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, apperrors.Database(err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Session: sess}, nil
}

func (s *AuthService) parseToken(token string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.InvalidToken("Token verification failed")
	}
	return claims, nil
}

// Validate checks the token signature, the role claim and the session store,
// and bumps last activity. Session expiry is checked lazily here so an
// expired session fails immediately even if the sweep has not run yet.
func (s *AuthService) Validate(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != adminRole {
		return nil, apperrors.Forbidden("Admin access required")
	}

	sess, err := s.store.Get(ctx, util.HashToken(token))
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if sess == nil {
		return nil, apperrors.SessionNotFound()
	}

	now := time.Now()
	if sess.Expired(now) {
		_ = s.store.Delete(ctx, sess.TokenHash)
		return nil, apperrors.TokenExpired()
	}

	sess.LastActivity = now
	if err := s.store.Save(ctx, sess); err != nil {
		// Activity tracking is advisory; the request proceeds.
		log.Warn().Err(err).Msg("failed to record session activity")
	}

	return sess, nil
}

// Refresh extends a live session by the configured window without reissuing
// the token value. A token whose session is gone gets SessionNotFound, which
// is distinct from TokenExpired.
func (s *AuthService) Refresh(ctx context.Context, tokenHash string) (time.Time, error) {
	sess, err := s.store.Get(ctx, tokenHash)
	if err != nil {
		return time.Time{}, apperrors.Database(err)
	}
	if sess == nil {
		return time.Time{}, apperrors.SessionNotFound()
	}

	now := time.Now()
	sess.LastActivity = now
	sess.ExpiresAt = now.Add(s.ttl)
	if err := s.store.Save(ctx, sess); err != nil {
		return time.Time{}, apperrors.Database(err)
	}
	return sess.ExpiresAt, nil
}

// Logout removes the session. Removing an absent session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, util.HashToken(token)); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

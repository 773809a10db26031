package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/atelierhq/studio-api/internal/errors"
	"github.com/atelierhq/studio-api/internal/session"
	"github.com/atelierhq/studio-api/internal/util"
)

const testPassword = "correct horse battery staple"

func newTestAuthService(t *testing.T, ttl time.Duration) (*AuthService, *session.MemoryStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := session.NewMemoryStore()
	svc := NewAuthService(store, "admin", string(hash), "test-secret-test-secret-test-secret", ttl)
	return svc, store
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials return token and session", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)

		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{UserAgent: "ua", IP: "1.2.3.4"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

		sess, err := store.Get(ctx, util.HashToken(result.Token))
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "admin", sess.Username)
		assert.Equal(t, "ua", sess.UserAgent)
		assert.Equal(t, "1.2.3.4", sess.IP)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)

		_, err := svc.Login(ctx, "admin", "wrong", ClientMeta{})
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)

		_, err := svc.Login(ctx, "root", testPassword, ClientMeta{})
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("second login evicts the first session", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)

		first, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)
		second, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		gone, err := store.Get(ctx, util.HashToken(first.Token))
		require.NoError(t, err)
		assert.Nil(t, gone)

		live, err := store.Get(ctx, util.HashToken(second.Token))
		require.NoError(t, err)
		assert.NotNil(t, live)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token returns session and bumps activity", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)
		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		before, _ := store.Get(ctx, util.HashToken(result.Token))
		time.Sleep(5 * time.Millisecond)

		sess, err := svc.Validate(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", sess.Username)
		assert.True(t, sess.LastActivity.After(before.LastActivity))
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)

		_, err := svc.Validate(ctx, "not-a-jwt")
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("token signed with another secret is invalid", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)
		otherStore := session.NewMemoryStore()
		other := NewAuthService(otherStore, "admin", svc.passwordHash, "another-secret-another-secret-xx", time.Hour)

		result, err := other.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		_, err = svc.Validate(ctx, result.Token)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("token without a stored session is rejected", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)
		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, util.HashToken(result.Token)))

		_, err = svc.Validate(ctx, result.Token)
		assert.Equal(t, apperrors.ErrCodeSessionNotFound, apperrors.GetCode(err))
	})

	t.Run("expired session is rejected lazily and removed", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)
		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		hash := util.HashToken(result.Token)
		sess, _ := store.Get(ctx, hash)
		sess.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, sess))

		_, err = svc.Validate(ctx, result.Token)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, apperrors.GetCode(err))

		gone, err := store.Get(ctx, hash)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("extends expiry without changing the token", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)
		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		hash := util.HashToken(result.Token)
		sess, _ := store.Get(ctx, hash)
		sess.ExpiresAt = time.Now().Add(time.Minute)
		require.NoError(t, store.Save(ctx, sess))

		newExpiry, err := svc.Refresh(ctx, hash)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), newExpiry, time.Minute)

		// The original token still validates.
		_, err = svc.Validate(ctx, result.Token)
		assert.NoError(t, err)
	})

	t.Run("absent session yields SessionNotFound", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)

		_, err := svc.Refresh(ctx, "no-such-hash")
		assert.Equal(t, apperrors.ErrCodeSessionNotFound, apperrors.GetCode(err))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the session", func(t *testing.T) {
		svc, store := newTestAuthService(t, time.Hour)
		result, err := svc.Login(ctx, "admin", testPassword, ClientMeta{})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, result.Token))

		gone, err := store.Get(ctx, util.HashToken(result.Token))
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc, _ := newTestAuthService(t, time.Hour)
		assert.NoError(t, svc.Logout(ctx, "never-issued"))
	})
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared across instances. Keys carry TTLs matching the session expiry, so
// DeleteExpired is a no-op here.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func usernameKey(username string) string {
	return "session:user:" + username
}

type redisSession struct {
	TokenHash    string    `json:"tokenHash"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	UserAgent    string    `json:"userAgent,omitempty"`
	IP           string    `json:"ip,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s *RedisStore) Get(ctx context.Context, tokenHash string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &Session{
		TokenHash:    rs.TokenHash,
		UserID:       rs.UserID,
		Username:     rs.Username,
		UserAgent:    rs.UserAgent,
		IP:           rs.IP,
		CreatedAt:    rs.CreatedAt,
		LastActivity: rs.LastActivity,
		ExpiresAt:    rs.ExpiresAt,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Saving an already-expired session is equivalent to deleting it.
		return s.Delete(ctx, sess.TokenHash)
	}

	data, err := json.Marshal(redisSession{
		TokenHash:    sess.TokenHash,
		UserID:       sess.UserID,
		Username:     sess.Username,
		UserAgent:    sess.UserAgent,
		IP:           sess.IP,
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
		ExpiresAt:    sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.TokenHash), data, ttl)
	// Username pointer enables the one-live-session-per-user eviction.
	pipe.Set(ctx, usernameKey(sess.Username), sess.TokenHash, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	tokenHash, err := s.client.Get(ctx, usernameKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup user session: %w", err)
	}

	deleted, err := s.client.Del(ctx, sessionKey(tokenHash), usernameKey(username)).Result()
	if err != nil {
		return 0, fmt.Errorf("delete user session: %w", err)
	}
	if deleted > 1 {
		deleted = 1
	}
	return deleted, nil
}

func (s *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	// Redis TTLs handle expiry.
	return 0, nil
}

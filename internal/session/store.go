// Package session provides the Redis-backed cookie session store. A
// session carries the signed-in user's identity and role; anonymous
// sessions carry the guest role so a cart can exist before sign-in.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// ErrNotFound indicates the token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Data is the payload stored per session token.
type Data struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// Store persists sessions in Redis keyed by an opaque token.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect opens a Redis client and verifies connectivity with a ping.
// The same client backs the session, cart, and checkout stores.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewStore wraps an existing Redis client.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores the payload under a fresh token and returns the token.
func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		ok, err := s.rdb.SetNX(ctx, keyPrefix+token, payload, s.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
		if ok {
			return token, nil
		}
	}
	return "", errors.New("session token collision")
}

// Get resolves a token. ErrNotFound covers both unknown and expired
// tokens.
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Update replaces the payload of an existing token, keeping its TTL
// behavior (the TTL restarts, matching a rolling session).
func (s *Store) Update(ctx context.Context, token string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err()
}

// Delete removes the session; deleting a missing token is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

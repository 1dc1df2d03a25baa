package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "checkout:"

// RedisDraftStore keeps checkout drafts in Redis keyed by the session
// token.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDraftStore) Get(ctx context.Context, token string) (*Draft, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkout draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return nil, fmt.Errorf("decode checkout draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, token string, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err()
}

func (s *RedisDraftStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

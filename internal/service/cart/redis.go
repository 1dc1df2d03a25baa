package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gearph-api/internal/domain"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "cart:"

// RedisStore keeps carts in Redis keyed by the session token, with the
// same lifetime as the session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, token string) (*domain.Cart, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, cart domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

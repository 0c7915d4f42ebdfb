package persist

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "gymflex:state:"

// RedisStore keeps blobs as plain Redis string values with no expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, redisPrefix+key, data, 0).Err()
}

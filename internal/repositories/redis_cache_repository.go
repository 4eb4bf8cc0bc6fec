package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// prefixo das chaves; o Redis pode ser compartilhado com outros serviços
const redisKeyPrefix = "academy:"

// RedisCacheRepository guarda o contador de tentativas de login no Redis,
// assim o bloqueio vale para todas as instâncias do servidor.
type RedisCacheRepository struct {
	client redis.UniversalClient
}

func NewRedisCacheRepository(client redis.UniversalClient) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client}
}

func redisKey(key string) string { return redisKeyPrefix + key }

func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, redisKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrCacheMiss
	case err != nil:
		return "", err
	}
	return val, nil
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, redisKey(key), value, expiration).Err()
}

func (r *RedisCacheRepository) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisKey(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// Incr nasce sem expiração, igual ao INCR do Redis.
func (r *RedisCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, redisKey(key)).Result()
}

func (r *RedisCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return r.client.Expire(ctx, redisKey(key), expiration).Result()
}

package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss é devolvido por Get quando a chave não existe ou expirou.
var ErrCacheMiss = errors.New("chave não encontrada no cache")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

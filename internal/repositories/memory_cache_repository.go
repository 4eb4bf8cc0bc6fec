package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCacheRepository substitui o Redis quando REDIS_ADDRESS não está configurado.
// O estado vive só neste processo.
type MemoryCacheRepository struct {
	store *cache.Cache
	mu    sync.Mutex
}

func NewMemoryCacheRepository(defaultExpiration time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{store: cache.New(defaultExpiration, 10*time.Minute)}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	val, ok := r.store.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return fmt.Sprint(val), nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	r.store.Set(key, value, ttl(expiration))
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		r.store.Delete(k)
	}
	return nil
}

func (r *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.store.IncrementInt64(key, 1)
	if err == nil {
		return n, nil
	}
	// Chave ausente ou expirada: começa de 1 sem prazo, como o INCR do Redis.
	r.store.Set(key, int64(1), cache.NoExpiration)
	return 1, nil
}

func (r *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	val, ok := r.store.Get(key)
	if !ok {
		return false, nil
	}
	r.store.Set(key, val, ttl(expiration))
	return true, nil
}

func ttl(expiration time.Duration) time.Duration {
	if expiration <= 0 {
		return cache.NoExpiration
	}
	return expiration
}

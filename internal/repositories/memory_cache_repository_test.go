package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_IncrAndExpire(t *testing.T) {
	c := NewMemoryCacheRepository(time.Minute)
	ctx := context.Background()

	n, err := c.Incr(ctx, "login:ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Incr(ctx, "login:ana")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := c.Expire(ctx, "login:ana", 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)

	val, err := c.Get(ctx, "login:ana")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	time.Sleep(40 * time.Millisecond)
	_, err = c.Get(ctx, "login:ana")
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err = c.Incr(ctx, "login:ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_SetDel(t *testing.T) {
	c := NewMemoryCacheRepository(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, c.Del(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	ok, err := c.Expire(ctx, "inexistente", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
}

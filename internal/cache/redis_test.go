package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/config"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}

func TestInitServer_Unreachable(t *testing.T) {
	_, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
		TimeoutRedis: 100 * time.Millisecond,
	})
	require.Error(t, err)
}

func TestCache_IncrWindow(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.IncrWindow(ctx, "ratelimit:10.0.0.1:/auth/login", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// другой ключ считается независимо
	got, err := c.IncrWindow(ctx, "ratelimit:10.0.0.2:/auth/login", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestCache_IncrWindow_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, c.Close())
	}()

	ctx := context.Background()
	key := "ratelimit:10.0.0.1:/auth/signup"

	_, err = c.IncrWindow(ctx, key, time.Minute)
	require.NoError(t, err)
	_, err = c.IncrWindow(ctx, key, time.Minute)
	require.NoError(t, err)

	// после истечения окна счётчик начинается заново
	mr.FastForward(time.Minute + time.Second)

	got, err := c.IncrWindow(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

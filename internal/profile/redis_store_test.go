package profile

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "instagram_url", "user_3", "https://instagram.com/a"))
	require.NoError(t, store.Set(ctx, "other_url_1", "user_3", "https://example.com"))

	assert.Equal(t, "https://instagram.com/a", mr.HGet("profile:user_3", "instagram_url"))

	value, ok, err := store.Get(ctx, "instagram_url", "user_3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://instagram.com/a", value)

	all, err := store.GetAll(ctx, "user_3")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.Delete(ctx, "instagram_url", "user_3"))
	_, ok, err = store.Get(ctx, "instagram_url", "user_3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_UnknownOwner(t *testing.T) {
	store, _ := newRedisStore(t)

	all, err := store.GetAll(context.Background(), "user_404")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.GetAll(context.Background(), "user_1")
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	_, err := NewStore("memcached", nil, nil)
	assert.Error(t, err)

	_, err = NewStore(BackendRedis, nil, nil)
	assert.Error(t, err)

	_, mr := newRedisStore(t)
	s, err := NewStore(BackendRedis, nil, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
}

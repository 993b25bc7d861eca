package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revozen-chatbot/server/internal/agent/model"
)

func strPtr(s string) *string { return &s }

func sampleContext() model.QueryContext {
	return model.QueryContext{
		Brand:  strPtr("MRF"),
		Intent: strPtr("list_models"),
		Size:   strPtr("195/65R15"),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "s1", sampleContext()))

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleContext(), got)

	// sessions are isolated by id
	_, ok, err = store.Get(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", sampleContext()))

	updated := sampleContext()
	updated.Brand = strPtr("CEAT")
	require.NoError(t, store.Put(ctx, "s1", updated))

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "CEAT", *got.Brand)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "s1", sampleContext()))

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleContext(), got)
}

func TestRedisStoreSetsTTL(t *testing.T) {
	store, mr := newRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", sampleContext()))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:s1:context"))
}

func TestRedisStoreExpiredSessionIsMiss(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", sampleContext()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("session:s1:context", "{not json"))

	_, ok, err := store.Get(context.Background(), "s1")
	assert.Error(t, err)
	assert.False(t, ok)
}

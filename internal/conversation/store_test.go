package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	sess := NewSession("abc")
	sess.State = StateWaitingName
	sess.Draft.Name = "Jane Roe"
	require.NoError(t, store.Put(ctx, sess))

	got, ok, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateWaitingName, got.State)
	assert.Equal(t, "Jane Roe", got.Draft.Name)
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Hour)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	sess := NewSession("abc")
	sess.State = StateWaitingSymptoms
	sess.Draft = Draft{Name: "Jane Roe", Age: "25", Contact: "9876543210"}
	sess.History = []Turn{{User: "hi", Bot: "hello", Timestamp: time.Now().UTC()}}
	require.NoError(t, store.Put(ctx, sess))

	got, ok, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateWaitingSymptoms, got.State)
	assert.Equal(t, sess.Draft, got.Draft)
	require.Len(t, got.History, 1)
	assert.Equal(t, "hi", got.History[0].User)
}

func TestRedisSessionStoreAppliesTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Hour)

	require.NoError(t, store.Put(context.Background(), NewSession("ttl-check")))

	ttl := mr.TTL("intake:session:ttl-check")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRedisSessionStoreExpiredSessionIsGone(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, NewSession("expiring")))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "expiring")
	require.NoError(t, err)
	assert.False(t, ok)
}

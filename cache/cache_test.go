package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedis(mr.Addr())
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestGetMiss(t *testing.T) {
	c, _ := testCache(t)

	_, err := c.Get(context.Background(), FeedKey)
	assert.ErrorIs(t, err, Miss)
}

func TestSetGet(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, FeedKey, []byte(`{"posts":[]}`), FeedTTL))

	data, err := c.Get(ctx, FeedKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"posts":[]}`), data)
}

func TestClear(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, FeedKey, []byte("payload"), FeedTTL))
	require.NoError(t, c.Clear(ctx, FeedKey))

	_, err := c.Get(ctx, FeedKey)
	assert.ErrorIs(t, err, Miss)
}

func TestEntryExpires(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, FeedKey, []byte("payload"), FeedTTL))

	// Just inside the window the entry still serves.
	mr.FastForward(FeedTTL - time.Second)
	data, err := c.Get(ctx, FeedKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// Crossing the window expires it.
	mr.FastForward(2 * time.Second)
	_, err = c.Get(ctx, FeedKey)
	assert.ErrorIs(t, err, Miss)
}

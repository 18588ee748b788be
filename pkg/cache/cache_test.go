package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string, int]()
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)

	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := New[string, string]()
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "short", "v", 10*time.Millisecond)
	c.Set(ctx, "forever", "v", -1)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)

	_, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestCacheDefaultTTL(t *testing.T) {
	c := New(WithDefaultTTL[string, int](10 * time.Millisecond))
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "a", 1, 0)

	_, ok := c.Get(ctx, "a")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int]()
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)
	assert.Equal(t, 2, c.Count())

	c.Delete(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Count())

	c.Clear(ctx)
	assert.Zero(t, c.Count())
}

func TestCacheCleanupLoop(t *testing.T) {
	c := New(
		WithDefaultTTL[string, int](5*time.Millisecond),
		WithCleanupInterval[string, int](10*time.Millisecond),
	)
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, "a", 1, 0)

	assert.Eventually(t, func() bool {
		return c.Count() == 0
	}, time.Second, 10*time.Millisecond)
}

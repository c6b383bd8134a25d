package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got["a"])

	now = now.Add(2 * time.Minute)
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_DeleteDropsValuesAndSets(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "identity:1", 1, 0))
	_, err := c.AddToSet(ctx, "blog:likes:1", "u1")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "identity:1", "blog:likes:1"))

	var v int
	found, _ := c.Get(ctx, "identity:1", &v)
	assert.False(t, found)
	added, _ := c.AddToSet(ctx, "blog:likes:1", "u1")
	assert.True(t, added)
}

func TestMemoryCache_Sets(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	added, err := c.AddToSet(ctx, "likes", "u1")
	require.NoError(t, err)
	assert.True(t, added)

	added, _ = c.AddToSet(ctx, "likes", "u1")
	assert.False(t, added)

	removed, _ := c.RemoveFromSet(ctx, "likes", "u1")
	assert.True(t, removed)
	removed, _ = c.RemoveFromSet(ctx, "likes", "u1")
	assert.False(t, removed)
}

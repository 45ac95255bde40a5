package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	var got payload
	hit, err := c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, DashboardPrefix+"stats", payload{Count: 3, Label: "x"}, time.Minute))
	hit, err = c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Count: 3, Label: "x"}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.Get(ctx, DashboardPrefix+"stats", &got)
	require.NoError(t, err)
	assert.False(t, hit, "entry expires after its ttl")
}

func TestRedisCacheDeletePrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, DashboardPrefix+"stats", payload{Count: 1}, time.Minute))
	require.NoError(t, c.Set(ctx, DashboardPrefix+"movement:7", payload{Count: 2}, time.Minute))
	require.NoError(t, c.Set(ctx, "session:abc", payload{Count: 3}, time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, DashboardPrefix))

	assert.False(t, mr.Exists(DashboardPrefix+"stats"))
	assert.False(t, mr.Exists(DashboardPrefix+"movement:7"))
	assert.True(t, mr.Exists("session:abc"))

	require.NoError(t, c.DeletePrefix(ctx, DashboardPrefix), "empty match is not an error")
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	hit, err := c.Get(ctx, "k", new(int))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
}

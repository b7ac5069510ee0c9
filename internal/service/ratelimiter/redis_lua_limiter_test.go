package ratelimiter_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceflow-labs/interview-prep-api/internal/service/ratelimiter"
)

func newTestLimiter(t *testing.T, buckets map[string]ratelimiter.BucketConfig) *ratelimiter.RedisLuaLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return ratelimiter.NewRedisLuaLimiter(rdb, buckets)
}

func TestAllow_ConsumesTokens(t *testing.T) {
	t.Parallel()
	l := newTestLimiter(t, map[string]ratelimiter.BucketConfig{
		"generation": {Capacity: 2, RefillRate: 0.001},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := l.Allow(ctx, "generation", 1)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, retryAfter, err := l.Allow(ctx, "generation", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter.Seconds(), 0.0)
}

func TestAllow_UnknownBucketFailsOpen(t *testing.T) {
	t.Parallel()
	l := newTestLimiter(t, nil)

	allowed, _, err := l.Allow(context.Background(), "nope", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_NilLimiterFailsOpen(t *testing.T) {
	t.Parallel()
	var l *ratelimiter.RedisLuaLimiter

	allowed, _, err := l.Allow(context.Background(), "generation", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSetBucketConfig(t *testing.T) {
	t.Parallel()
	l := newTestLimiter(t, nil)
	l.SetBucketConfig("generation", ratelimiter.NewBucketConfigFromPerMinute(60))

	allowed, _, err := l.Allow(context.Background(), "generation", 60)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = l.Allow(context.Background(), "generation", 60)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestNewBucketConfigFromPerMinute(t *testing.T) {
	t.Parallel()
	cfg := ratelimiter.NewBucketConfigFromPerMinute(30)
	assert.Equal(t, int64(30), cfg.Capacity)
	assert.InDelta(t, 0.5, cfg.RefillRate, 1e-9)

	assert.Zero(t, ratelimiter.NewBucketConfigFromPerMinute(0))
}

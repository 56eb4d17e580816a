package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(nil, Config{EvaluatePerMin: 10, BurstMultiplier: 2})
	ctx := context.Background()

	result, err := rl.AllowEvaluate(ctx, "203.0.113.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
}

func TestFallbackLimiterBlocksBurst(t *testing.T) {
	rl := NewRateLimiter(nil, Config{EvaluatePerMin: 2, BurstMultiplier: 1})
	ctx := context.Background()

	blocked := false
	for i := 0; i < 10; i++ {
		result, err := rl.AllowEvaluate(ctx, "203.0.113.2")
		require.NoError(t, err)
		if !result.Allowed {
			blocked = true
			assert.Greater(t, result.RetryAfter.Seconds(), float64(0))
			break
		}
	}
	assert.True(t, blocked, "burst should exhaust the token bucket")
}

func TestFallbackLimiterIsolatesIPs(t *testing.T) {
	rl := NewRateLimiter(nil, Config{EvaluatePerMin: 2, BurstMultiplier: 1})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := rl.AllowEvaluate(ctx, "203.0.113.3")
		require.NoError(t, err)
	}

	// A fresh IP still has a full bucket.
	result, err := rl.AllowEvaluate(ctx, "203.0.113.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(nil, DefaultConfig())

	_, err := rl.AllowEvaluate(context.Background(), "203.0.113.5")
	require.NoError(t, err)

	stats := rl.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}

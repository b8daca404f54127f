package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisReportCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisReportCache(client, ttl), mr
}

func TestReportCache_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetMonthly(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	reports := []domain.MonthlyReport{{Month: "2024-03", Total: 4, TopSite: "SpaceNews"}}
	require.NoError(t, c.SetMonthly(ctx, reports))
	assert.Equal(t, time.Minute, mr.TTL(MonthlyReportKey))

	got, ok, err := c.GetMonthly(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, reports, got)
}

func TestReportCache_EmptyReportIsAHit(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.SetMonthly(ctx, nil))

	got, ok, err := c.GetMonthly(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestReportCache_ExpiresAndInvalidates(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	reports := []domain.MonthlyReport{{Month: "2024-03", Total: 1, TopSite: "NASA"}}

	require.NoError(t, c.SetMonthly(ctx, reports))
	mr.FastForward(2 * time.Minute)
	_, ok, err := c.GetMonthly(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetMonthly(ctx, reports))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(MonthlyReportKey))
}

func TestReportCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(MonthlyReportKey, "{not json"))

	_, ok, err := c.GetMonthly(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestReportCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, ok, err := c.GetMonthly(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

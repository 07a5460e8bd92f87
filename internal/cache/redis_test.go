package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisSummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSummaryCache(client, ttl), mr
}

func summaryFor(userID string, month, year int) *models.BalanceSummary {
	return &models.BalanceSummary{
		UserID:       userID,
		Month:        month,
		Year:         year,
		Balance:      50,
		TotalIncome:  100,
		TotalExpense: 50,
		ExpenseByCategory: []models.CategorySummary{
			{CategoryID: "c1", CategoryName: "Food", Total: 50, Percentage: 100},
		},
	}
}

func TestRedisSummaryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)
	jan := analytics.Period{Year: 2025, Month: 1}

	got, version, err := c.Get(ctx, "u1", jan)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, version)

	require.NoError(t, c.Set(ctx, summaryFor("u1", 1, 2025), version))
	assert.True(t, mr.Exists("summary:u1:2025-01"))

	got, _, err = c.Get(ctx, "u1", jan)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, summaryFor("u1", 1, 2025), got)
	assert.Nil(t, got.IncomeByCategory)

	mr.FastForward(2 * time.Minute)
	got, _, err = c.Get(ctx, "u1", jan)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSummaryCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 0)

	require.NoError(t, c.Set(ctx, summaryFor("u1", 1, 2025), 0))
	require.NoError(t, c.Set(ctx, summaryFor("u1", 2, 2025), 0))
	require.NoError(t, c.Set(ctx, summaryFor("u2", 1, 2025), 0))

	require.NoError(t, c.Invalidate(ctx, "u1", analytics.Period{Year: 2025, Month: 1}))
	assert.False(t, mr.Exists("summary:u1:2025-01"))
	assert.True(t, mr.Exists("summary:u1:2025-02"))

	require.NoError(t, c.InvalidateUser(ctx, "u1"))
	assert.False(t, mr.Exists("summary:u1:2025-02"))
	assert.True(t, mr.Exists("summary:u2:2025-01"))

	assert.NoError(t, c.Invalidate(ctx, "u1"))
	assert.NoError(t, c.InvalidateUser(ctx, "nobody"))

	ver, err := mr.Get("summaryver:u1")
	require.NoError(t, err)
	assert.Equal(t, "2", ver)
	assert.False(t, mr.Exists("summaryver:u2"))
}

func TestRedisSummaryCacheSkipsStaleSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 0)
	jan := analytics.Period{Year: 2025, Month: 1}

	_, version, err := c.Get(ctx, "u1", jan)
	require.NoError(t, err)

	// a write lands between the miss and the store
	require.NoError(t, c.Invalidate(ctx, "u1", jan))
	require.NoError(t, c.Set(ctx, summaryFor("u1", 1, 2025), version))
	assert.False(t, mr.Exists("summary:u1:2025-01"))

	_, version, err = c.Get(ctx, "u1", jan)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, c.Set(ctx, summaryFor("u1", 1, 2025), version))
	assert.True(t, mr.Exists("summary:u1:2025-01"))

	// wiping the user also outdates versions read before it
	require.NoError(t, c.InvalidateUser(ctx, "u1"))
	require.NoError(t, c.Set(ctx, summaryFor("u1", 1, 2025), version))
	assert.False(t, mr.Exists("summary:u1:2025-01"))
}

func TestRedisSummaryCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, mr.Set("summary:u1:2025-01", "{not json"))

	_, _, err := c.Get(context.Background(), "u1", analytics.Period{Year: 2025, Month: 1})
	assert.Error(t, err)

	require.NoError(t, mr.Set("summaryver:u1", "abc"))
	_, _, err = c.Get(context.Background(), "u1", analytics.Period{Year: 2025, Month: 2})
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	client.Close()

	client, err = NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
}

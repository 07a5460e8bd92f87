// Package cache stores computed monthly summaries in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "summary"
	versionPrefix = "summaryver"
)

var errStaleVersion = errors.New("summary cache version changed")

// NewRedisClient connects to redisURL, accepting either a redis:// URL or a
// bare host:port, and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	url := redisURL
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisSummaryCache keeps one JSON-encoded summary per user and month.
// Every invalidation bumps a per-user version counter; a summary is only
// stored when the version it was computed under is still current.
type RedisSummaryCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisSummaryCache returns a cache whose entries expire after ttl.
// A zero ttl keeps entries until they are invalidated.
func NewRedisSummaryCache(client redis.UniversalClient, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

func summaryKey(userID string, p analytics.Period) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, p)
}

// versionKey sits outside the summary:<user>:* namespace so InvalidateUser
// never deletes it.
func versionKey(userID string) string {
	return fmt.Sprintf("%s:%s", versionPrefix, userID)
}

// Get returns the cached summary, or nil when there is none, together with
// the user's current cache version.
func (c *RedisSummaryCache) Get(ctx context.Context, userID string, p analytics.Period) (*models.BalanceSummary, int64, error) {
	vals, err := c.client.MGet(ctx, summaryKey(userID, p), versionKey(userID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read summary: %w", err)
	}
	version, err := parseVersion(vals[1])
	if err != nil {
		return nil, 0, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, version, nil
	}
	var summary models.BalanceSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, version, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &summary, version, nil
}

func parseVersion(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	version, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to decode cache version %q: %w", s, err)
	}
	return version, nil
}

// Set stores summary unless the user's cache was invalidated after version
// was read. A skipped write is not an error.
func (c *RedisSummaryCache) Set(ctx context.Context, summary *models.BalanceSummary, version int64) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	p := analytics.Period{Year: summary.Year, Month: summary.Month}
	verKey := versionKey(summary.UserID)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, summaryKey(summary.UserID, p), raw, c.ttl)
			return nil
		})
		return err
	}, verKey)
	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}

// Invalidate drops the summaries of the given months
func (c *RedisSummaryCache) Invalidate(ctx context.Context, userID string, periods ...analytics.Period) error {
	if len(periods) == 0 {
		return nil
	}
	keys := make([]string, 0, len(periods))
	for _, p := range periods {
		keys = append(keys, summaryKey(userID, p))
	}
	return c.drop(ctx, userID, keys)
}

// InvalidateUser drops every cached summary of a user
func (c *RedisSummaryCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, userID)
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan summaries: %w", err)
	}
	return c.drop(ctx, userID, keys)
}

func (c *RedisSummaryCache) drop(ctx context.Context, userID string, keys []string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		pipe.Incr(ctx, versionKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate summaries: %w", err)
	}
	return nil
}

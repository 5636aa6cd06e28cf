// Package cache provides Redis-backed decorators for expensive read views.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vidtube_backend/internal/feature/view/domain/entity"
)

// StatsSource computes channel stats from the entity store.
type StatsSource interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*entity.ChannelStats, error)
}

// CachingStatsViewer decorates a StatsSource with Redis caching. Entries
// expire after the TTL and are dropped early by Invalidate when a write
// touches the channel.
type CachingStatsViewer struct {
	inner     StatsSource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingStatsViewer decorates inner. A nil rdb disables caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "stats".
func NewCachingStatsViewer(rdb *redis.Client, ttl time.Duration, inner StatsSource, namespace string) *CachingStatsViewer {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "stats"
	}
	return &CachingStatsViewer{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// ChannelStats checks the cache first then falls back to inner.
func (c *CachingStatsViewer) ChannelStats(ctx context.Context, channelID uuid.UUID) (*entity.ChannelStats, error) {
	if c.rdb == nil {
		return c.inner.ChannelStats(ctx, channelID)
	}

	key := c.cacheKey(channelID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.ChannelStats
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Invalidate drops the cached stats of channelID. Failures only shorten
// freshness, so they are logged and ignored.
func (c *CachingStatsViewer) Invalidate(ctx context.Context, channelID uuid.UUID) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(channelID)).Err(); err != nil {
		slog.Warn("failed to invalidate channel stats", "channel_id", channelID, "error", err)
	}
}

func (c *CachingStatsViewer) cacheKey(channelID uuid.UUID) string {
	return fmt.Sprintf("%s:channel:%s", c.namespace, channelID)
}

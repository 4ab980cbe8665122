package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/models"
)

// CachedPipeline is a read-through Redis cache in front of a Pipeline.
// Redis failures are logged and the view is derived directly.
type CachedPipeline struct {
	pipeline *Pipeline
	redis    redis.Cmdable
	prefix   string
	ttl      time.Duration
	logger   logger.Logger
}

func NewCachedPipeline(pipeline *Pipeline, client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *CachedPipeline {
	return &CachedPipeline{
		pipeline: pipeline,
		redis:    client,
		prefix:   prefix,
		ttl:      ttl,
		logger:   log.WithFields(map[string]interface{}{"component": "dashboard-cache"}),
	}
}

// cacheKeyFields is the canonical form hashed into a cache key. Field order is
// fixed by the struct, and JSON quoting keeps values from running together.
type cacheKeyFields struct {
	Actor   models.Actor            `json:"actor"`
	Filters models.DashboardFilters `json:"filters"`
}

// CacheKey is prefix plus the sha256 of the JSON-encoded actor and filters.
func CacheKey(prefix string, actor models.Actor, filters models.DashboardFilters) string {
	// string fields only, Marshal cannot fail
	data, _ := json.Marshal(cacheKeyFields{Actor: actor, Filters: filters})
	sum := sha256.Sum256(data)
	return prefix + hex.EncodeToString(sum[:])
}

// Derive returns the cached view when present. hit reports whether Redis
// served it.
func (c *CachedPipeline) Derive(ctx context.Context, actor models.Actor, filters models.DashboardFilters) (view models.DashboardView, hit bool) {
	if c.redis == nil {
		return c.pipeline.Derive(actor, filters), false
	}

	key := CacheKey(c.prefix, actor, filters)
	raw, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &view); jsonErr == nil {
			metrics.DashboardCacheLookups.WithLabelValues("hit").Inc()
			return view, true
		} else {
			c.warn(key, jsonErr)
		}
	case stderrors.Is(err, redis.Nil):
		metrics.DashboardCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.DashboardCacheLookups.WithLabelValues("error").Inc()
		c.warn(key, err)
		return c.pipeline.Derive(actor, filters), false
	}

	view = c.pipeline.Derive(actor, filters)
	data, err := json.Marshal(view)
	if err != nil {
		c.warn(key, err)
		return view, false
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn(key, err)
	}
	return view, false
}

// Invalidate drops every cached view under the prefix.
func (c *CachedPipeline) Invalidate(ctx context.Context) (int, error) {
	if c.redis == nil {
		return 0, nil
	}
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return removed, errors.NewDashboardCacheFailedError(err)
		}
		if len(keys) > 0 {
			if err := c.redis.Del(ctx, keys...).Err(); err != nil {
				return removed, errors.NewDashboardCacheFailedError(err)
			}
			removed += len(keys)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (c *CachedPipeline) warn(key string, err error) {
	cacheErr := errors.NewDashboardCacheFailedError(err)
	c.logger.Warn("dashboard cache degraded", map[string]interface{}{
		"key":       key,
		"errorCode": string(cacheErr.Code),
		"error":     err.Error(),
	})
}

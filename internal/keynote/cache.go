package keynote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"conferenceapi/internal/config"
	"conferenceapi/internal/model"
)

const cacheKeyPrefix = "keynote:"

// NewRedis opens a Redis client for the keynote cache and checks connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// CachedLookup is a read-through cache in front of another Lookup.
// Only successful lookups are cached. Any Redis failure falls through to next.
type CachedLookup struct {
	next Lookup
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

// NewCachedLookup wraps next with a Redis cache holding entries for ttl.
func NewCachedLookup(next Lookup, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedLookup {
	return &CachedLookup{next: next, rdb: rdb, ttl: ttl, log: log}
}

var _ Lookup = (*CachedLookup)(nil)

func (c *CachedLookup) GetByID(ctx context.Context, id int64) (*model.Keynote, error) {
	key := fmt.Sprintf("%s%d", cacheKeyPrefix, id)

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var k model.Keynote
		if err := json.Unmarshal(b, &k); err == nil {
			return &k, nil
		}
		c.log.Warn("keynote_cache_corrupt", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("keynote_cache_get_failed", zap.String("key", key), zap.Error(err))
	}

	k, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(k); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn("keynote_cache_set_failed", zap.String("key", key), zap.Error(err))
		}
	}
	return k, nil
}

// Package cache provides an optional read-through cache for list query
// results, keyed by entity type plus the hash of the normalized query. The
// filter/sort pipeline stays a pure function; caching wraps it from the
// outside and every failure degrades to a miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
)

// QueryCache stores assembled query results for a bounded time.
type QueryCache interface {
	Get(ctx context.Context, key string) (*models.QueryResult, bool)
	Set(ctx context.Context, key string, result *models.QueryResult)
}

// RedisCache is a QueryCache backed by Redis with a fixed TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// NewRedisCache connects to redisURL and verifies connectivity.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration, log *logrus.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisCache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Get returns the cached result for key, or (nil, false) on a miss or any
// cache error.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.QueryResult, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("query cache get failed")
		}

		return nil, false
	}

	var result models.QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.WithError(err).Warn("query cache entry corrupt, treating as miss")

		return nil, false
	}

	return &result, true
}

// Set stores the result under key. Failures are logged and ignored.
func (c *RedisCache) Set(ctx context.Context, key string, result *models.QueryResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.WithError(err).Warn("query cache encode failed")

		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("query cache set failed")
	}
}

// Ping verifies cache connectivity, for readiness checks.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying Redis client.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// Key derives a deterministic cache key from the entity type and a
// normalized query. Set members are sorted so logically equal queries hash
// identically.
func Key(t models.EntityType, q models.Query) string {
	var b strings.Builder
	b.WriteString(string(t))

	writeSet := func(name string, s models.StringSet) {
		values := s.Values()
		sort.Strings(values)
		fmt.Fprintf(&b, "|%s=%s", name, strings.Join(values, ","))
	}

	writeSet("ids", q.IDs)
	writeSet("countries", q.Countries)
	writeSet("subregions", q.Subregions)
	writeSet("regions", q.Regions)
	writeSet("institutionTypes", q.InstitutionTypes)

	fmt.Fprintf(&b, "|no=%d:%d|noo=%d:%d|po=%g:%g|page=%d|limit=%d|order=%s:%s",
		q.MinNOutputs, q.MaxNOutputs,
		q.MinNOutputsOpen, q.MaxNOutputsOpen,
		q.MinPOutputsOpen, q.MaxPOutputsOpen,
		q.Page, q.Limit, q.OrderBy, q.OrderDir)

	sum := sha256.Sum256([]byte(b.String()))

	return "oatlas:query:" + hex.EncodeToString(sum[:])
}

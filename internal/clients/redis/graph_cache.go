package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/utils"
)

const cachePrefix = "coursegraph:"

// GraphCache memoizes query-surface subgraph responses. Misses and cache
// errors are never fatal; callers fall through to the graph backend.
type GraphCache interface {
	Get(ctx context.Context, key string) (*coursegraph.Subgraph, bool)
	Set(ctx context.Context, key string, sub *coursegraph.Subgraph)
	// Flush drops every cached subgraph. Called after ingest, since new
	// constraints can extend any course's subgraph.
	Flush(ctx context.Context) error
	Close() error
}

type graphCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewGraphCache connects to REDIS_ADDR. Callers should skip construction
// entirely when the variable is unset; the cache is optional.
func NewGraphCache(log *logger.Logger) (GraphCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := utils.GetEnv("REDIS_ADDR", "", log)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("GRAPH_CACHE_TTL_SECONDS", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &graphCache{
		log: log.With("client", "GraphCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Key builds the cache identity of one traversal query.
func Key(rel coursegraph.Relation, startID string, depth int) string {
	return fmt.Sprintf("%s%s:%s:%d", cachePrefix, rel, startID, depth)
}

func (c *graphCache) Get(ctx context.Context, key string) (*coursegraph.Subgraph, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var sub coursegraph.Subgraph
	if err := json.Unmarshal(raw, &sub); err != nil {
		c.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &sub, true
}

func (c *graphCache) Set(ctx context.Context, key string, sub *coursegraph.Subgraph) {
	raw, err := json.Marshal(sub)
	if err != nil {
		c.log.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Debug("Cache write failed", "key", key, "error", err)
	}
}

func (c *graphCache) Flush(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *graphCache) Close() error {
	return c.rdb.Close()
}

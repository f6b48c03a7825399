// README: Redis-backed cache for the built transit graph.
package transit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	graphCacheKey = "transit:graph"
	graphCacheTTL = 5 * time.Minute
)

// GraphCache holds a snapshot of the built graph between requests. The
// graph is rebuilt from routes on a miss; mutations to the network
// invalidate the snapshot.
type GraphCache interface {
	Get(ctx context.Context) (Graph, bool)
	Set(ctx context.Context, g Graph)
	Invalidate(ctx context.Context)
}

type RedisGraphCache struct {
	redis *redis.Client
}

func NewRedisGraphCache(client *redis.Client) *RedisGraphCache {
	return &RedisGraphCache{redis: client}
}

func (c *RedisGraphCache) Get(ctx context.Context) (Graph, bool) {
	val, err := c.redis.Get(ctx, graphCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var g Graph
	if err := json.Unmarshal(val, &g); err != nil {
		return nil, false
	}
	return g, true
}

func (c *RedisGraphCache) Set(ctx context.Context, g Graph) {
	payload, err := json.Marshal(g)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, graphCacheKey, payload, graphCacheTTL).Err()
}

func (c *RedisGraphCache) Invalidate(ctx context.Context) {
	_ = c.redis.Del(ctx, graphCacheKey).Err()
}

// NopGraphCache disables caching; every query rebuilds the graph.
type NopGraphCache struct{}

func (NopGraphCache) Get(context.Context) (Graph, bool) { return nil, false }
func (NopGraphCache) Set(context.Context, Graph)        {}
func (NopGraphCache) Invalidate(context.Context)        {}

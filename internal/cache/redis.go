package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"orderdesk/internal/metrics"
)

// Redis backs the query cache with a shared Redis. Each resource keeps a
// member set of the value keys it owns, so invalidation is a set read plus a
// bulk delete rather than a keyspace scan.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{Client: client, TTL: ttl}
}

func (c *Redis) valueKey(key Key) string {
	return "view:" + key.Resource + ":" + key.Params
}

func (c *Redis) indexKey(resource string) string {
	return "viewkeys:" + resource
}

func (c *Redis) Get(ctx context.Context, key Key) ([]byte, bool) {
	raw, err := c.Client.Get(ctx, c.valueKey(key)).Bytes()
	if err != nil {
		metrics.CacheHits.WithLabelValues(key.Resource, "miss").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(key.Resource, "hit").Inc()
	return raw, true
}

func (c *Redis) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.TTL
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.valueKey(key), value, ttl)
		pipe.SAdd(ctx, c.indexKey(key.Resource), c.valueKey(key))
		// Index lives slightly longer than its members so stale index entries
		// age out instead of accumulating.
		pipe.Expire(ctx, c.indexKey(key.Resource), ttl+time.Minute)
		return nil
	})
	return err
}

func (c *Redis) Invalidate(ctx context.Context, resources ...string) error {
	for _, res := range resources {
		keys, err := c.Client.SMembers(ctx, c.indexKey(res)).Result()
		if err != nil {
			return err
		}
		keys = append(keys, c.indexKey(res))
		if err := c.Client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"talentdesk/pkg/platform/sentinel"
)

var (
	cacheOpDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "talentdesk_cache_op_duration_ms",
		Help:    "Latency of keyed cache operations in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"op"})
)

const keyPrefix = "tdesk:cache:"

// Redis is the durable KeyedCache used in production. Entries are persisted
// without TTL; the aggregate repository owns their lifecycle.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an externally managed go-redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (c *Redis) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	defer observeCacheOp("set", start)

	if err := c.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer observeCacheOp("get", start)

	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Err: err}
	}
	return value, nil
}

func (c *Redis) Remove(ctx context.Context, key string) error {
	start := time.Now()
	defer observeCacheOp("remove", start)

	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return &Error{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Clear removes every entry under the cache prefix. Uses SCAN so a large
// keyspace never blocks the server the way KEYS would.
func (c *Redis) Clear(ctx context.Context) error {
	start := time.Now()
	defer observeCacheOp("clear", start)

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return &Error{Op: "clear", Err: err}
		}
	}
	if err := iter.Err(); err != nil {
		return &Error{Op: "clear", Err: err}
	}
	return nil
}

func observeCacheOp(op string, start time.Time) {
	cacheOpDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

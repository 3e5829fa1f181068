package cache

import (
	"context"

	"meridian-be/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Invalidator is the side-channel notified after every committed mutation so
// downstream read caches do not serve stale rows. It must only be called after
// commit; invalidating earlier lets a concurrent reader repopulate the cache
// with pre-mutation data.
type Invalidator interface {
	InvalidateProduct(ctx context.Context, productID string) error
	InvalidateProductList(ctx context.Context) error
	InvalidateOrders(ctx context.Context) error
}

type redisInvalidator struct {
	client *redis.Client
}

// NewRedis connects an Invalidator to the given redis URL.
func NewRedis(url string) (Invalidator, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &redisInvalidator{client: redis.NewClient(opts)}, nil
}

func (r *redisInvalidator) InvalidateProduct(ctx context.Context, productID string) error {
	// The list key covers the same row, drop both together.
	return r.client.Del(ctx, KeyProductList, KeyProductPrefix+productID).Err()
}

func (r *redisInvalidator) InvalidateProductList(ctx context.Context) error {
	return r.client.Del(ctx, KeyProductList).Err()
}

func (r *redisInvalidator) InvalidateOrders(ctx context.Context) error {
	return r.client.Del(ctx, KeyOrderList).Err()
}

// Noop serves deployments without redis configured.
type Noop struct{}

func (Noop) InvalidateProduct(ctx context.Context, productID string) error { return nil }
func (Noop) InvalidateProductList(ctx context.Context) error               { return nil }
func (Noop) InvalidateOrders(ctx context.Context) error                    { return nil }

// FromURL returns a redis-backed Invalidator, or Noop when no URL is set.
func FromURL(url string) Invalidator {
	if url == "" {
		logger.L().Warn("REDIS_URL not set, cache invalidation disabled")
		return Noop{}
	}

	inv, err := NewRedis(url)
	if err != nil {
		logger.L().Error("failed to parse REDIS_URL, cache invalidation disabled")
		return Noop{}
	}
	return inv
}

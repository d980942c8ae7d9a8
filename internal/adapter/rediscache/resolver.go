// Package rediscache shares resolved ZIP codes between service replicas.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "zip:"

// Resolver wraps a ZIPResolver with a Redis-backed cache. Redis problems
// never fail a lookup; the call falls through to the inner resolver.
type Resolver struct {
	inner   domain.ZIPResolver
	client  redis.Cmdable
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Open creates a Redis client. No connection is made until first use.
func Open(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// NewResolver creates a Redis cache decorator around a resolver.
func NewResolver(inner domain.ZIPResolver, client redis.Cmdable, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	return &Resolver{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (r *Resolver) ResolveZIP(ctx context.Context, zip string) (domain.LocationResult, error) {
	key := keyPrefix + zip

	if result, ok := r.get(ctx, key); ok {
		r.metrics.ZIPCache.WithLabelValues("redis", "hit").Inc()
		return result, nil
	}
	r.metrics.ZIPCache.WithLabelValues("redis", "miss").Inc()

	result, err := r.inner.ResolveZIP(ctx, zip)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Warn("redis cache encode failed", "key", key, "error", err)
		return result, nil
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis cache write failed", "key", key, "error", err)
	}
	return result, nil
}

func (r *Resolver) get(ctx context.Context, key string) (domain.LocationResult, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.LocationResult{}, false
	}
	if err != nil {
		r.logger.Warn("redis cache read failed", "key", key, "error", err)
		return domain.LocationResult{}, false
	}

	var result domain.LocationResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Warn("redis cache entry corrupt, ignoring", "key", key, "error", err)
		return domain.LocationResult{}, false
	}
	return result, true
}

// Ping reports whether Redis is reachable.
func (r *Resolver) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

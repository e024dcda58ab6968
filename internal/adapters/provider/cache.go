package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

const (
	cacheKeyPrefix = "gridiron:boxscore:"
	defaultTTL     = 24 * time.Hour
	pingTimeout    = 5 * time.Second
)

// Cache stores raw payload bytes. Get returns ErrCacheMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL and pings it.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// CachedClient serves payloads of finished games from a cache and falls back
// to an upstream RawFetcher. Cache failures are logged and never fail a fetch.
type CachedClient struct {
	upstream RawFetcher
	cache    Cache
	ttl      time.Duration
	log      logger.Logger
}

// NewCachedClient wraps upstream with cache.
func NewCachedClient(upstream RawFetcher, cache Cache, opts ...CacheOption) *CachedClient {
	c := &CachedClient{
		upstream: upstream,
		cache:    cache,
		ttl:      defaultTTL,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey is the cache key for gameID.
func CacheKey(gameID string) string { return cacheKeyPrefix + gameID }

// FetchGame implements Client.
func (c *CachedClient) FetchGame(ctx context.Context, gameID string) (*boxscore.Payload, error) {
	key := CacheKey(gameID)

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		p, derr := DecodePayload(raw)
		if derr == nil {
			metrics.RecordCacheHit()
			return p, nil
		}
		metrics.RecordCacheError()
		c.log.Warn(ctx, "discarding undecodable cache entry", logger.String("key", key), logger.Error(derr))
	case errors.Is(err, ErrCacheMiss):
		metrics.RecordCacheMiss()
	default:
		metrics.RecordCacheError()
		c.log.Warn(ctx, "cache read failed", logger.String("key", key), logger.Error(err))
	}

	raw, err = c.upstream.FetchRaw(ctx, gameID)
	if err != nil {
		return nil, err
	}
	p, err := DecodePayload(raw)
	if err != nil {
		return nil, err
	}

	if isFinal(p) {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			metrics.RecordCacheError()
			c.log.Warn(ctx, "cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return p, nil
}

// isFinal reports whether the payload describes a finished game. Only those
// are stable enough to cache.
func isFinal(p *boxscore.Payload) bool {
	meta, err := boxscore.ExtractGameMeta(p.Header)
	return err == nil && meta.Status == model.StatusFinal
}

var (
	_ Client     = (*HTTPClient)(nil)
	_ RawFetcher = (*HTTPClient)(nil)
	_ Client     = (*CachedClient)(nil)
	_ Cache      = (*RedisCache)(nil)
)

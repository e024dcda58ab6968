package updater

import (
	"context"
	"fmt"

	"github.com/okian/gridiron/internal/adapters/mq/worker"
	"github.com/okian/gridiron/internal/adapters/provider"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/scoring"
	"github.com/okian/gridiron/pkg/logger"
)

// NewStore opens the data directory with the configured scorer.
func NewStore(cfg *config.Config, log logger.Logger) (*repository.FileStore, error) {
	if err := scoring.ValidateWeights(cfg.ScoreWeights); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeights, err)
	}
	scorer := scoring.NewWeightedScorer(scoring.WithWeightsFromConfig(cfg.ScoreWeights))
	return repository.NewFileStore(cfg.DataDir,
		repository.WithScorer(scorer),
		repository.WithLogger(log.Named("store")))
}

// NewProvider builds the uncached provider client for every configured
// endpoint.
func NewProvider(cfg *config.Config, log logger.Logger) *provider.HTTPClient {
	return provider.NewHTTPClient(cfg.ProviderBaseURL,
		provider.WithTeamsURL(cfg.ProviderTeamsURL),
		provider.WithScoreboardURL(cfg.ProviderScoreboardURL),
		provider.WithTimeout(cfg.ProviderTimeout()),
		provider.WithLogger(log.Named("provider")))
}

// NewFetcher builds the provider client. With redis_url set, final games are
// served from redis; an unreachable redis only disables the cache. The
// returned func releases the cache connection.
func NewFetcher(ctx context.Context, cfg *config.Config, log logger.Logger) (worker.Fetcher, func() error) {
	client := NewProvider(cfg, log)
	noop := func() error { return nil }

	if cfg.RedisURL == "" {
		return client, noop
	}
	cache, err := provider.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn(ctx, "box score cache disabled", logger.Error(err))
		return client, noop
	}
	log.Info(ctx, "box score cache enabled", logger.Duration("ttl", cfg.CacheTTL()))
	return provider.NewCachedClient(client, cache,
		provider.WithTTL(cfg.CacheTTL()),
		provider.WithCacheLogger(log.Named("cache"))), cache.Close
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/gridiron/internal/adapters/http/api"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout          = 10 * time.Second
	writeTimeout         = 35 * time.Second
	idleTimeout          = 60 * time.Second
	readHeaderTimeout    = 5 * time.Second
	shutdownTimeout      = 30 * time.Second
	storeMetricsInterval = 30 * time.Second
)

func main() {
	os.Exit(serve())
}

func serve() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 2
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.NewFileStore(cfg.DataDir, repository.WithLogger(log.Named("store")))
	if err != nil {
		log.Error(ctx, "failed to open data directory", logger.String("dataDir", cfg.DataDir), logger.Error(err))
		return 1
	}

	go startStoreMetricsUpdater(ctx, store)

	server := api.NewServer(store,
		api.WithAllowedOrigins(cfg.AllowedOrigins()),
		api.WithLogger(log.Named("api")))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("dataDir", cfg.DataDir),
			logger.Int("cpus", runtime.NumCPU()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return 0
}

// storeCounter is the part of the store the gauges read.
type storeCounter interface {
	Count(ctx context.Context) int
	ListAggregates(ctx context.Context) ([]model.CollegeAggregate, error)
}

// startStoreMetricsUpdater refreshes the document gauges until ctx ends.
func startStoreMetricsUpdater(ctx context.Context, store storeCounter) {
	ticker := time.NewTicker(storeMetricsInterval)
	defer ticker.Stop()

	updateStoreMetrics(ctx, store)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateStoreMetrics(ctx, store)
		}
	}
}

func updateStoreMetrics(ctx context.Context, store storeCounter) {
	metrics.UpdatePlayersTotal(store.Count(ctx))
	if aggs, err := store.ListAggregates(ctx); err == nil {
		metrics.UpdateAggregatesTotal(len(aggs))
	}
}

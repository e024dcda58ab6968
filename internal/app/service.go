// Package service runs the stat pipeline: fetch, merge, aggregate and
// summarize.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/gridiron/internal/adapters/mq/worker"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/adapters/roster"
	"github.com/okian/gridiron/internal/domain/aggregate"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/summary"
	"github.com/okian/gridiron/internal/domain/tables"
	"github.com/okian/gridiron/pkg/logger"
)

const defaultConcurrency = 5

// Store is everything the pipeline persists.
type Store interface {
	repository.PlayerStore
	repository.DocumentStore
	Seed(ctx context.Context, baseline model.Player) (bool, error)
}

// Service owns one data directory and runs batch passes against it.
// Runs are serialized.
type Service struct {
	mu sync.Mutex

	store      Store
	client     worker.Fetcher
	rosterPath string

	tables      *tables.Classification
	aggregates  *aggregate.Builder
	summaries   *summary.Builder
	concurrency int
	topSchools  int
	now         func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent provider fetches.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTopSchoolsLimit sets the length of topSchoolsThisWeek.
func WithTopSchoolsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topSchools = n
		}
	}
}

// WithTables sets the classification tables.
func WithTables(t *tables.Classification) Option {
	return func(s *Service) {
		if t != nil {
			s.tables = t
		}
	}
}

// WithClock sets the time source used for run stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. client may be nil for a service that only seeds
// and rebuilds.
func New(store Store, client worker.Fetcher, rosterPath string, opts ...Option) *Service {
	s := &Service{
		store:       store,
		client:      client,
		rosterPath:  rosterPath,
		tables:      tables.New(),
		concurrency: defaultConcurrency,
		topSchools:  summary.DefaultTopSchools,
		now:         time.Now,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.aggregates = aggregate.NewBuilder(s.tables)
	s.summaries = summary.NewBuilder(s.tables, summary.WithTopSchoolsLimit(s.topSchools))
	return s
}

func (s *Service) loadRoster(ctx context.Context) (*roster.Roster, error) {
	r, err := roster.Load(ctx, s.rosterPath, s.logger)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return r, nil
}

// baseline builds the empty player document for a roster entry.
func (s *Service) baseline(e model.RosterEntry) model.Player {
	return e.Baseline(s.tables.Slug(tables.CollegeName(e.College)))
}

// Seed creates a baseline document for every roster entry that has none.
// Existing documents are never touched. It returns how many were created.
func (s *Service) Seed(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.loadRoster(ctx)
	if err != nil {
		return 0, err
	}

	created, failed := 0, 0
	for _, e := range r.Entries() {
		ok, err := s.store.Seed(ctx, s.baseline(e))
		if err != nil {
			if ctx.Err() != nil {
				return created, ctx.Err()
			}
			s.logger.Error(ctx, "seed failed", logger.String("playerId", e.ID), logger.Error(err))
			failed++
			continue
		}
		if ok {
			created++
		}
	}
	s.logger.Info(ctx, "seed finished",
		logger.Int("created", created),
		logger.Int("failed", failed),
		logger.Int("existing", r.Len()-created-failed))
	return created, nil
}

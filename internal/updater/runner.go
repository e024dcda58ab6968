// Package updater runs one batch invocation: build the roster, seed, rebuild
// or a full update.
package updater

import (
	"context"
	"fmt"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/adapters/roster"
	service "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
)

// Run executes the mode selected by opts. The report is zero for every mode
// but a full update.
func Run(ctx context.Context, cfg *config.Config, opts Options, log logger.Logger) (model.RunReport, error) {
	modes := 0
	for _, on := range []bool{opts.Seed, opts.Rebuild, opts.BuildRoster} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return model.RunReport{}, ErrConflictingModes
	}
	if opts.BuildRoster {
		return model.RunReport{}, BuildRoster(ctx, cfg, log)
	}

	store, err := NewStore(cfg, log)
	if err != nil {
		return model.RunReport{}, err
	}
	svcOpts := []service.Option{
		service.WithConcurrency(cfg.FetchConcurrency),
		service.WithTopSchoolsLimit(cfg.TopSchoolsLimit),
		service.WithLogger(log.Named("pipeline")),
	}

	switch {
	case opts.Seed:
		created, err := service.New(store, nil, cfg.Roster(), svcOpts...).Seed(ctx)
		if err != nil {
			return model.RunReport{}, fmt.Errorf("seed: %w", err)
		}
		log.Info(ctx, "seeded player documents", logger.Int("created", created))
		return model.RunReport{}, nil

	case opts.Rebuild:
		aggs, err := service.New(store, nil, cfg.Roster(), svcOpts...).Rebuild(ctx)
		if err != nil {
			return model.RunReport{}, fmt.Errorf("rebuild: %w", err)
		}
		log.Info(ctx, "rebuilt derived documents", logger.Int("aggregates", len(aggs)))
		return model.RunReport{}, nil
	}

	ids, err := resolveGameIDs(ctx, cfg, opts, log)
	if err != nil {
		return model.RunReport{}, err
	}
	if len(ids) == 0 {
		log.Warn(ctx, "no game ids given; rebuilding derived documents only")
	}

	fetcher, closeFetcher := NewFetcher(ctx, cfg, log)
	defer func() {
		if err := closeFetcher(); err != nil {
			log.Warn(ctx, "closing cache", logger.Error(err))
		}
	}()

	return service.New(store, fetcher, cfg.Roster(), svcOpts...).Run(ctx, ids)
}

// BuildRoster reads every team roster from the provider and atomically
// replaces the roster file.
func BuildRoster(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	entries, st, err := roster.Build(ctx, NewProvider(cfg, log), log.Named("roster"))
	if err != nil {
		return err
	}
	path := cfg.Roster()
	if err := repository.WriteJSON(path, entries); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	log.Info(ctx, "roster written",
		logger.String("path", path),
		logger.Int("players", len(entries)),
		logger.Int("teamsFailed", st.TeamsFailed))
	return nil
}

// resolveGameIDs adds the scoreboard source ahead of the file sources.
func resolveGameIDs(ctx context.Context, cfg *config.Config, opts Options, log logger.Logger) ([]string, error) {
	if len(opts.GameIDs) > 0 || !opts.Scoreboard {
		return GameIDs(cfg, opts)
	}
	sb, err := NewProvider(cfg, log).FetchScoreboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scoreboard: %w", err)
	}
	ids := sb.StartedGameIDs()
	log.Info(ctx, "game ids from scoreboard",
		logger.Int("week", sb.Week),
		logger.Int("events", len(sb.Events)),
		logger.Int("started", len(ids)))
	return ids, nil
}

// GameIDs resolves the file-backed ids to process: explicit ids, then -games,
// then games_path.
func GameIDs(cfg *config.Config, opts Options) ([]string, error) {
	if len(opts.GameIDs) > 0 {
		return opts.GameIDs, nil
	}
	path := opts.GamesFile
	if path == "" {
		path = cfg.GamesPath
	}
	if path == "" {
		return nil, nil
	}
	ids, err := roster.LoadGameIDs(path)
	if err != nil {
		return nil, fmt.Errorf("load game ids: %w", err)
	}
	return ids, nil
}

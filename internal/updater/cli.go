package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/pkg/logger"
)

// SetupLogging initializes the global logger from cfg.
func SetupLogging(ctx context.Context, cfg *config.Config, verbose bool) (logger.Logger, error) {
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.Get()
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("info")
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level))
	}
	return log, nil
}

// ShowHelp prints usage information.
func ShowHelp() {
	os.Stdout.WriteString(`gridiron update
===============

Fetches NFL box scores, merges them into per-player documents and rebuilds
the college pages, the home summary and the indices.

Usage:
  update [options] [gameId ...]

Options:
  -games string
        File of game ids (quoted, comma or newline separated, // comments allowed)
  -seed
        Create baseline documents for roster entries that have none, then exit
  -rebuild
        Rebuild derived documents from stored players without fetching
  -build-roster
        Rebuild allPlayers.json from the provider team rosters, then exit
  -scoreboard
        Process the started games on the current scoreboard
  -verbose
        Enable debug logging
  -help
        Show this help message

Configuration comes from GRIDIRON_CONFIG (YAML) and GRIDIRON_* variables,
e.g. GRIDIRON_DATA_DIR, GRIDIRON_REDIS_URL, GRIDIRON_FETCH_CONCURRENCY.
`)
}

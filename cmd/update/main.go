package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/updater"
	"github.com/okian/gridiron/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		gamesFile = flag.String("games", "", "File of game ids (default: games_path from config)")
		seed      = flag.Bool("seed", false, "Create baseline player documents and exit")
		rebuild   = flag.Bool("rebuild", false, "Rebuild derived documents without fetching")
		build     = flag.Bool("build-roster", false, "Rebuild the roster file from the provider and exit")
		live      = flag.Bool("scoreboard", false, "Take game ids from the current scoreboard")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		updater.ShowHelp()
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}
	log, err := updater.SetupLogging(ctx, cfg, *verbose)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}
	defer func() { _ = logger.Sync() }()

	report, err := updater.Run(ctx, cfg, updater.Options{
		Seed:        *seed,
		Rebuild:     *rebuild,
		BuildRoster: *build,
		Scoreboard:  *live,
		GamesFile:   *gamesFile,
		GameIDs:     flag.Args(),
		Verbose:     *verbose,
	}, log)
	if err != nil {
		log.Error(ctx, "update failed", logger.Error(err))
		return 1
	}
	if report.RunID != "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	}
	return 0
}

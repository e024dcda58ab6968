package updater

// Options selects what one invocation of the updater does.
type Options struct {
	Seed        bool     // create baseline player documents and stop
	Rebuild     bool     // regenerate derived documents without fetching
	BuildRoster bool     // rebuild allPlayers.json from the provider rosters and stop
	Scoreboard  bool     // take game ids from the current scoreboard
	GamesFile   string   // game id list; overrides games_path
	GameIDs     []string // explicit ids; override any other source
	Verbose     bool     // debug logging
}

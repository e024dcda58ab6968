// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - Errors are wrapped with this package's sentinels.
package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the read API listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the root of every persisted document.
	DataDir string `koanf:"data_dir"`

	// RosterPath points at allPlayers.json. Empty means <data_dir>/allPlayers.json.
	RosterPath string `koanf:"roster_path"`

	// GamesPath is an optional file of game ids, one per line.
	GamesPath string `koanf:"games_path"`

	// ProviderBaseURL is the box score endpoint; the game id is sent as ?event=<id>.
	ProviderBaseURL string `koanf:"provider_base_url"`

	// ProviderTeamsURL lists teams; rosters are read from <url>/<teamId>/roster.
	ProviderTeamsURL string `koanf:"provider_teams_url"`

	// ProviderScoreboardURL is the current-week scoreboard.
	ProviderScoreboardURL string `koanf:"provider_scoreboard_url"`

	// ProviderTimeoutMS bounds a single provider request.
	ProviderTimeoutMS int `koanf:"provider_timeout_ms"`

	// FetchConcurrency caps in-flight provider requests.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// TopSchoolsLimit truncates topSchoolsThisWeek.
	TopSchoolsLimit int `koanf:"top_schools_limit"`

	// RedisURL enables the box score cache when set, e.g. redis://localhost:6379/0.
	RedisURL string `koanf:"redis_url"`

	// CacheTTLMinutes is how long a final box score stays cached.
	CacheTTLMinutes int `koanf:"cache_ttl_minutes"`

	// ScoreWeights overrides production score weights by stat key.
	ScoreWeights map[string]float64 `koanf:"score_weights"`

	// CORSAllowedOrigins is a comma separated origin list for the read API.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		DataDir:               "data",
		ProviderBaseURL:       "https://site.api.espn.com/apis/site/v2/sports/football/nfl/summary",
		ProviderTeamsURL:      "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams",
		ProviderScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
		ProviderTimeoutMS:     10_000,
		FetchConcurrency:      5,
		TopSchoolsLimit:       10,
		CacheTTLMinutes:       24 * 60,
		ScoreWeights:          map[string]float64{},
		CORSAllowedOrigins:    "*",
	}
}

// Roster resolves the roster file path.
func (c *Config) Roster() string {
	if c.RosterPath != "" {
		return c.RosterPath
	}
	return filepath.Join(c.DataDir, "allPlayers.json")
}

// ProviderTimeout returns ProviderTimeoutMS as a duration.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutMS) * time.Millisecond
}

// CacheTTL returns CacheTTLMinutes as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// AllowedOrigins splits CORSAllowedOrigins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

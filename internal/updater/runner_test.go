package updater_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/gridiron/internal/adapters/provider"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/adapters/roster"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/updater"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const rosterJSON = `[{"id": "3918298", "name": "Josh Allen", "college": "Wyoming", "position": "QB", "nflTeam": "Buffalo Bills", "nflTeamAbbr": "BUF"}]`

func summary(id string) string {
	return fmt.Sprintf(`{"header":{"id":%q,"competitions":[{"date":"2025-09-08T00:20Z",`+
		`"status":{"type":{"state":"post","completed":true,"shortDetail":"Final"}},`+
		`"competitors":[{"homeAway":"home","score":"41","team":{"id":"2","abbreviation":"BUF","displayName":"Buffalo Bills"}},`+
		`{"homeAway":"away","score":"40","team":{"id":"33","abbreviation":"BAL","displayName":"Baltimore Ravens"}}]}]},`+
		`"boxscore":{"players":[{"team":{"id":"2","abbreviation":"BUF"},"statistics":[`+
		`{"name":"passing","keys":["completions/passingAttempts","passingYards","passingTouchdowns","interceptions"],`+
		`"athletes":[{"athlete":{"id":"3918298"},"stats":["33/46","394","2","0"]}]}]}]}}`, id)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.RosterPath = filepath.Join(dir, "allPlayers.json")
	if err := os.WriteFile(cfg.RosterPath, []byte(rosterJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRun(t *testing.T) {
	log := logger.Nop()

	convey.Convey("Given a provider serving one final game", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.URL.Query().Get("event")
			if id != "G1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, summary(id))
		}))
		defer srv.Close()

		cfg := testConfig(t)
		cfg.ProviderBaseURL = srv.URL
		ctx := context.Background()

		convey.Convey("When running an update for it and a missing game", func() {
			report, err := updater.Run(ctx, cfg, updater.Options{GameIDs: []string{"G1", "G404"}}, log)

			convey.Convey("Then the good game is merged and the bad one counted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(report.GamesProcessed, convey.ShouldEqual, 1)
				convey.So(report.GamesFailed, convey.ShouldEqual, 1)

				store, err := repository.NewFileStore(cfg.DataDir)
				convey.So(err, convey.ShouldBeNil)
				p, err := store.Get(ctx, "3918298")
				convey.So(err, convey.ShouldBeNil)
				convey.So(*p.LastGameID, convey.ShouldEqual, "G1")
				g, _ := p.GameLogs.Get("G1")
				convey.So(*g.ResultText, convey.ShouldEqual, "W 41–40")

				_, err = store.ReadHomeSummary(ctx)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When seeding", func() {
			_, err := updater.Run(ctx, cfg, updater.Options{Seed: true}, log)
			convey.So(err, convey.ShouldBeNil)

			store, _ := repository.NewFileStore(cfg.DataDir)
			convey.So(store.Count(ctx), convey.ShouldEqual, 1)
		})

		convey.Convey("When rebuilding", func() {
			_, err := updater.Run(ctx, cfg, updater.Options{Rebuild: true}, log)
			convey.So(err, convey.ShouldBeNil)

			store, _ := repository.NewFileStore(cfg.DataDir)
			agg, err := store.ReadAggregate(ctx, "wyoming")
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(agg.Players), convey.ShouldEqual, 1)
		})
	})

	convey.Convey("Given conflicting modes", t, func() {
		_, err := updater.Run(context.Background(), testConfig(t), updater.Options{Seed: true, Rebuild: true}, log)
		convey.So(errors.Is(err, updater.ErrConflictingModes), convey.ShouldBeTrue)
	})

	convey.Convey("Given an unknown score weight", t, func() {
		cfg := testConfig(t)
		cfg.ScoreWeights = map[string]float64{"hotDogsEaten": 1}
		_, err := updater.Run(context.Background(), cfg, updater.Options{Seed: true}, log)
		convey.So(errors.Is(err, updater.ErrWeights), convey.ShouldBeTrue)
	})
}

func leagueProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("event")
		if id != "G1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, summary(id))
	})
	mux.HandleFunc("/teams", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"sports":[{"leagues":[{"teams":[{"team":{"id":"2","abbreviation":"BUF","displayName":"Buffalo Bills"}}]}]}]}`)
	})
	mux.HandleFunc("/teams/2/roster", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"athletes":[{"position":"offense","items":[`+
			`{"id":"3918298","displayName":"Josh Allen","position":{"abbreviation":"QB"},"college":{"name":"Wyoming"}},`+
			`{"id":"5","displayName":"No College","position":{"abbreviation":"K"}}]}]}`)
	})
	mux.HandleFunc("/scoreboard", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"week":{"number":1},"events":[`+
			`{"id":"G1","status":{"type":{"state":"post","completed":true}}},`+
			`{"id":"G9","status":{"type":{"state":"pre","completed":false}}}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_LeagueSources(t *testing.T) {
	log := logger.Nop()

	convey.Convey("Given a provider with teams, rosters and a scoreboard", t, func() {
		srv := leagueProvider(t)
		cfg := testConfig(t)
		cfg.RosterPath = filepath.Join(t.TempDir(), "built", "allPlayers.json")
		cfg.ProviderBaseURL = srv.URL + "/summary"
		cfg.ProviderTeamsURL = srv.URL + "/teams"
		cfg.ProviderScoreboardURL = srv.URL + "/scoreboard"
		ctx := context.Background()

		convey.Convey("When building the roster", func() {
			_, err := updater.Run(ctx, cfg, updater.Options{BuildRoster: true}, log)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then only players with a college are written", func() {
				r, err := roster.Load(ctx, cfg.Roster(), nil)
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Len(), convey.ShouldEqual, 1)
				e, ok := r.Get("3918298")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(e.NFLTeamAbbr, convey.ShouldEqual, "BUF")
				convey.So(e.College, convey.ShouldEqual, "Wyoming")
			})

			convey.Convey("Then an update over the scoreboard merges the started game", func() {
				report, err := updater.Run(ctx, cfg, updater.Options{Scoreboard: true}, log)
				convey.So(err, convey.ShouldBeNil)
				convey.So(report.GamesRequested, convey.ShouldEqual, 1)
				convey.So(report.GamesProcessed, convey.ShouldEqual, 1)
				convey.So(report.PlayersUpdated, convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given a provider whose team list fails", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()
		cfg := testConfig(t)
		cfg.ProviderTeamsURL = srv.URL + "/teams"
		before, err := os.ReadFile(cfg.Roster())
		convey.So(err, convey.ShouldBeNil)

		_, err = updater.Run(context.Background(), cfg, updater.Options{BuildRoster: true}, log)

		convey.Convey("Then the run fails and the roster file is untouched", func() {
			convey.So(errors.Is(err, roster.ErrRosterBuild), convey.ShouldBeTrue)
			convey.So(errors.Is(err, provider.ErrStatus), convey.ShouldBeTrue)
			after, _ := os.ReadFile(cfg.Roster())
			convey.So(string(after), convey.ShouldEqual, string(before))
		})
	})

	convey.Convey("Given build-roster with another mode", t, func() {
		_, err := updater.Run(context.Background(), testConfig(t), updater.Options{BuildRoster: true, Seed: true}, log)
		convey.So(errors.Is(err, updater.ErrConflictingModes), convey.ShouldBeTrue)
	})
}

func TestGameIDs(t *testing.T) {
	convey.Convey("Given ids from several sources", t, func() {
		dir := t.TempDir()
		cfgFile := filepath.Join(dir, "cfg-games.js")
		flagFile := filepath.Join(dir, "flag-games.js")
		convey.So(os.WriteFile(cfgFile, []byte(`"A1", "A2"`), 0o644), convey.ShouldBeNil)
		convey.So(os.WriteFile(flagFile, []byte("// week 2\n\"B1\",\n"), 0o644), convey.ShouldBeNil)

		cfg := config.New()
		cfg.GamesPath = cfgFile

		convey.Convey("Then explicit ids win", func() {
			ids, err := updater.GameIDs(cfg, updater.Options{GameIDs: []string{"C1"}, GamesFile: flagFile})
			convey.So(err, convey.ShouldBeNil)
			convey.So(ids, convey.ShouldResemble, []string{"C1"})
		})

		convey.Convey("Then the flag file beats games_path", func() {
			ids, err := updater.GameIDs(cfg, updater.Options{GamesFile: flagFile})
			convey.So(err, convey.ShouldBeNil)
			convey.So(ids, convey.ShouldResemble, []string{"B1"})
		})

		convey.Convey("Then games_path is the fallback", func() {
			ids, err := updater.GameIDs(cfg, updater.Options{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(ids, convey.ShouldResemble, []string{"A1", "A2"})
		})

		convey.Convey("Then no source means no ids", func() {
			ids, err := updater.GameIDs(config.New(), updater.Options{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(ids, convey.ShouldBeEmpty)
		})
	})
}

func TestNewFetcher(t *testing.T) {
	convey.Convey("Given no redis url", t, func() {
		f, closeFn := updater.NewFetcher(context.Background(), config.New(), logger.Nop())
		_, plain := f.(*provider.HTTPClient)
		convey.So(plain, convey.ShouldBeTrue)
		convey.So(closeFn(), convey.ShouldBeNil)
	})

	convey.Convey("Given an unusable redis url", t, func() {
		cfg := config.New()
		cfg.RedisURL = "not-a-redis-url"
		f, _ := updater.NewFetcher(context.Background(), cfg, logger.Nop())
		_, plain := f.(*provider.HTTPClient)
		convey.So(plain, convey.ShouldBeTrue)
	})
}

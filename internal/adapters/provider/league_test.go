package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/okian/gridiron/internal/adapters/provider"
	"github.com/smartystreets/goconvey/convey"
)

const teamsBody = `{"sports":[{"leagues":[{"teams":[
  {"team":{"id":"2","abbreviation":"buf","displayName":"Buffalo Bills"}},
  {"team":{"id":33,"abbreviation":"BAL","displayName":"Baltimore Ravens"}},
  {"team":{"abbreviation":"NOID"}}
]}]}]}`

const rosterBody = `{"athletes":[
  {"position":"offense","items":[
    {"id":"3918298","displayName":"Josh Allen","position":{"abbreviation":"QB"},"college":{"id":"2751","name":"Wyoming"}},
    {"id":4361370,"fullName":"Zay Flowers","position":{"abbreviation":"WR"},"college":"Boston College"}
  ]},
  {"position":"specialTeam","items":[]},
  {"position":"defense","items":[
    {"id":"1","displayName":"Walk On","position":{"abbreviation":"LB"}}
  ]}
]}`

const scoreboardBody = `{"week":{"number":2},"events":[
  {"id":"401772918","date":"2025-09-14T17:00Z","status":{"type":{"state":"post","completed":true}}},
  {"id":"401772919","date":"2025-09-14T20:25Z","status":{"type":{"state":"in","completed":false}}},
  {"id":"401772920","competitions":[{"date":"2025-09-15T00:20Z","status":{"type":{"state":"pre","completed":false}}}]}
]}`

func leagueServer(t *testing.T) *provider.HTTPClient {
	t.Helper()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			fmt.Fprint(w, teamsBody)
		case "/teams/2/roster":
			fmt.Fprint(w, rosterBody)
		case "/teams/7/roster":
			fmt.Fprint(w, `{"team":{"id":"7"}}`)
		case "/scoreboard":
			fmt.Fprint(w, scoreboardBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := provider.NewHTTPClient(srv.URL+"/summary",
		provider.WithTeamsURL(srv.URL+"/teams"),
		provider.WithScoreboardURL(srv.URL+"/scoreboard"))
	return c
}

func TestHTTPClient_FetchTeams(t *testing.T) {
	convey.Convey("Given a team list", t, func() {
		c := leagueServer(t)

		teams, err := c.FetchTeams(context.Background())

		convey.Convey("Then teams with an id are returned with upper-case abbreviations", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(teams, convey.ShouldResemble, []provider.Team{
				{ID: "2", Abbr: "BUF", Name: "Buffalo Bills"},
				{ID: "33", Abbr: "BAL", Name: "Baltimore Ravens"},
			})
		})
	})

	convey.Convey("Given a team list without a league", t, func() {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `{"sports":[]}`) })
		_, err := provider.NewHTTPClient("", provider.WithTeamsURL(srv.URL)).FetchTeams(context.Background())
		convey.So(errors.Is(err, provider.ErrUnexpectedShape), convey.ShouldBeTrue)
	})

	convey.Convey("Given a team list that is not JSON", t, func() {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "<html/>") })
		_, err := provider.NewHTTPClient("", provider.WithTeamsURL(srv.URL)).FetchTeams(context.Background())
		convey.So(errors.Is(err, provider.ErrDecode), convey.ShouldBeTrue)
	})
}

func TestHTTPClient_FetchRoster(t *testing.T) {
	convey.Convey("Given a roster grouped by unit", t, func() {
		c := leagueServer(t)

		athletes, err := c.FetchRoster(context.Background(), "2")

		convey.Convey("Then every group is flattened and college spellings are read", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(athletes, convey.ShouldResemble, []provider.Athlete{
				{ID: "3918298", Name: "Josh Allen", Position: "QB", College: "Wyoming"},
				{ID: "4361370", Name: "Zay Flowers", Position: "WR", College: "Boston College"},
				{ID: "1", Name: "Walk On", Position: "LB"},
			})
		})
	})

	convey.Convey("Given failing roster responses", t, func() {
		c := leagueServer(t)

		_, err := c.FetchRoster(context.Background(), "404")
		convey.So(errors.Is(err, provider.ErrStatus), convey.ShouldBeTrue)

		_, err = c.FetchRoster(context.Background(), "7")
		convey.So(errors.Is(err, provider.ErrUnexpectedShape), convey.ShouldBeTrue)
	})
}

func TestHTTPClient_FetchScoreboard(t *testing.T) {
	convey.Convey("Given a scoreboard with finished, live and upcoming games", t, func() {
		c := leagueServer(t)

		sb, err := c.FetchScoreboard(context.Background())

		convey.Convey("Then every event is read with its state", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(sb.Week, convey.ShouldEqual, 2)
			convey.So(len(sb.Events), convey.ShouldEqual, 3)
			convey.So(sb.Events[2].State, convey.ShouldEqual, "pre")
			convey.So(sb.Events[2].Date, convey.ShouldEqual, "2025-09-15T00:20Z")
		})

		convey.Convey("Then only started games are selected", func() {
			convey.So(sb.StartedGameIDs(), convey.ShouldResemble, []string{"401772918", "401772919"})
		})
	})

	convey.Convey("Given a scoreboard error", t, func() {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) })
		_, err := provider.NewHTTPClient("", provider.WithScoreboardURL(srv.URL)).FetchScoreboard(context.Background())
		convey.So(errors.Is(err, provider.ErrStatus), convey.ShouldBeTrue)
	})
}

package config_test

import (
	"testing"
	"time"

	"github.com/okian/gridiron/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.FetchConcurrency, convey.ShouldEqual, 5)
			convey.So(cfg.TopSchoolsLimit, convey.ShouldEqual, 10)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 24*time.Hour)
			convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"*"})
			convey.So(cfg.ProviderTeamsURL, convey.ShouldEndWith, "/nfl/teams")
			convey.So(cfg.ProviderScoreboardURL, convey.ShouldEndWith, "/nfl/scoreboard")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When an explicit roster path is set", func() {
			cfg.RosterPath = "/tmp/roster.json"

			convey.Convey("Then it should win over the data dir", func() {
				convey.So(cfg.Roster(), convey.ShouldEqual, "/tmp/roster.json")
			})
		})
	})
}

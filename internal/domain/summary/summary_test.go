package summary_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/summary"
	"github.com/okian/gridiron/internal/domain/tables"
	. "github.com/smartystreets/goconvey/convey"
)

func college(name, slug, group string, n int) model.CollegeAggregate {
	agg := model.CollegeAggregate{College: name, Slug: slug, Conference: group, Group: group}
	for i := 0; i < n; i++ {
		agg.Players = append(agg.Players, model.PlayerSummary{ID: fmt.Sprintf("%s-%d", slug, i), Position: "WR"})
	}
	return agg
}

func withScore(agg model.CollegeAggregate, date string, scores ...float64) model.CollegeAggregate {
	for i, s := range scores {
		agg.Players[i].LastGame = &model.GameLog{GameID: "G", Date: date, ProductionScore: s}
	}
	return agg
}

var now = time.Date(2025, time.September, 14, 18, 30, 0, 0, time.UTC)

func TestConferenceGroups(t *testing.T) {
	Convey("Given colleges with tied player counts in one conference", t, func() {
		aggs := []model.CollegeAggregate{
			college("Ztate", "ztate", "SEC", 12),
			college("Atate", "atate", "SEC", 12),
			college("Beta", "beta", "SEC", 5),
		}

		got := summary.NewBuilder(tables.New()).Build(aggs, now).ConferenceGroups

		Convey("Then counts sort descending and ties break by name", func() {
			So(len(got), ShouldEqual, 1)
			rows := got[0].Colleges
			So(rows[0].College, ShouldEqual, "Atate")
			So(rows[1].College, ShouldEqual, "Ztate")
			So(rows[2].College, ShouldEqual, "Beta")
			So(rows[0].PlayerCount, ShouldEqual, 12)
		})
	})

	Convey("Given colleges spread across known and unknown groups", t, func() {
		aggs := []model.CollegeAggregate{
			college("Montana", "montana", "Big Sky", 1),
			college("Fordham", "fordham", "", 1),
			college("Clemson", "clemson", "ACC", 1),
			college("Ohio State", "ohio-state", "Big Ten", 2),
			college("Yale", "yale", "Ivy", 1),
			college("Alabama", "ala", "SEC", 3),
		}
		aggs[1].Conference = ""

		got := summary.NewBuilder(nil).Build(aggs, now).ConferenceGroups

		Convey("Then priority groups come first and unknown groups follow alphabetically", func() {
			names := make([]string, 0, len(got))
			for _, g := range got {
				names = append(names, g.Name)
			}
			So(names, ShouldResemble, []string{"SEC", "Big Ten", "ACC", tables.FallbackConference, "Big Sky", "Ivy"})
		})
	})
}

func TestTopSchools(t *testing.T) {
	Convey("Given fifteen colleges with distinct production", t, func() {
		var aggs []model.CollegeAggregate
		for i := 1; i <= 15; i++ {
			agg := college(fmt.Sprintf("College %02d", i), fmt.Sprintf("c%02d", i), "SEC", 1)
			aggs = append(aggs, withScore(agg, "2025-09-14", float64(i)*1.5))
		}

		top := summary.NewBuilder(nil).Build(aggs, now).TopSchoolsThisWeek

		Convey("Then exactly the top ten remain, descending", func() {
			So(len(top), ShouldEqual, 10)
			So(top[0].College, ShouldEqual, "College 15")
			So(top[0].ProductionScore, ShouldEqual, 22.5)
			So(top[9].College, ShouldEqual, "College 06")
			for i := 1; i < len(top); i++ {
				So(top[i-1].ProductionScore, ShouldBeGreaterThan, top[i].ProductionScore)
			}
		})

		Convey("Then the limit is configurable", func() {
			top := summary.NewBuilder(nil, summary.WithTopSchoolsLimit(3)).Build(aggs, now).TopSchoolsThisWeek
			So(len(top), ShouldEqual, 3)
		})
	})

	Convey("Given players with and without a last game", t, func() {
		a := withScore(college("Georgia", "georgia", "SEC", 3), "2025-09-07", 10, 5.25)
		a.Players[1].LastGame.Date = "2025-09-14"
		b := college("Texas", "texas", "SEC", 2)
		c := withScore(college("Auburn", "auburn", "SEC", 1), "2025-09-07", 15.25)

		top := summary.NewBuilder(nil).Build([]model.CollegeAggregate{b, a, c}, now).TopSchoolsThisWeek

		Convey("Then scores sum, absent games count zero and ties break by name", func() {
			So(len(top), ShouldEqual, 3)
			So(top[0].College, ShouldEqual, "Auburn")
			So(top[1].College, ShouldEqual, "Georgia")
			So(top[1].ProductionScore, ShouldEqual, 15.25)
			So(*top[1].LatestGameDate, ShouldEqual, "2025-09-14")
			So(top[2].College, ShouldEqual, "Texas")
			So(top[2].ProductionScore, ShouldEqual, 0.0)
			So(top[2].LatestGameDate, ShouldBeNil)
		})
	})
}

func TestTopSchools_RankOnUnroundedTotal(t *testing.T) {
	Convey("Given totals that only differ past two decimals", t, func() {
		alpha := withScore(college("Alpha", "alpha", "SEC", 1), "2025-09-14", 10.001)
		zeta := withScore(college("Zeta", "zeta", "SEC", 1), "2025-09-14", 10.004)

		top := summary.NewBuilder(nil).Build([]model.CollegeAggregate{alpha, zeta}, now).TopSchoolsThisWeek

		Convey("Then the larger raw total ranks first and both emit the rounded score", func() {
			So(len(top), ShouldEqual, 2)
			So(top[0].College, ShouldEqual, "Zeta")
			So(top[1].College, ShouldEqual, "Alpha")
			So(top[0].ProductionScore, ShouldEqual, 10.0)
			So(top[1].ProductionScore, ShouldEqual, 10.0)
		})
	})
}

func TestPositionLeaders(t *testing.T) {
	Convey("Given players across position codes", t, func() {
		lsu := college("LSU", "lsu", "SEC", 3)
		lsu.Players[0].Position = "CB"
		lsu.Players[1].Position = "S"
		lsu.Players[2].Position = "QB"
		ohio := college("Ohio State", "ohio-state", "Big Ten", 3)
		ohio.Players[0].Position = "WR"
		ohio.Players[1].Position = "FS"
		ohio.Players[2].Position = "ATH"
		bama := college("Alabama", "ala", "SEC", 1)
		bama.Players[0].Position = "nb"

		leaders := summary.NewBuilder(nil).Build([]model.CollegeAggregate{ohio, lsu, bama}, now).PositionLeaders

		Convey("Then groups appear in canonical order with Other last", func() {
			groups := make([]string, 0, len(leaders))
			for _, l := range leaders {
				groups = append(groups, l.Group)
			}
			So(groups, ShouldResemble, []string{"QB", "WR", "DB", "Other"})
		})

		Convey("Then colleges rank by count with a name tie-break", func() {
			db := leaders[2]
			So(db.Group, ShouldEqual, "DB")
			So(len(db.Colleges), ShouldEqual, 3)
			So(db.Colleges[0].College, ShouldEqual, "LSU")
			So(db.Colleges[0].Count, ShouldEqual, 2)
			So(db.Colleges[1].College, ShouldEqual, "Alabama")
			So(db.Colleges[2].College, ShouldEqual, "Ohio State")
		})

		Convey("Then the document is an object keyed by group", func() {
			raw, err := json.Marshal(leaders)
			So(err, ShouldBeNil)
			So(string(raw), ShouldStartWith,
				`{"QB":[{"college":"LSU","slug":"lsu","count":1}],"WR":[{"college":"Ohio State","slug":"ohio-state","count":1}],"DB":[`)
			So(string(raw), ShouldEndWith, `"Other":[{"college":"Ohio State","slug":"ohio-state","count":1}]}`)

			var decoded map[string][]map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded["DB"][0]["count"], ShouldEqual, 2.0)
		})
	})

	Convey("Given no players", t, func() {
		raw, err := json.Marshal(summary.NewBuilder(nil).Build(nil, now).PositionLeaders)
		So(err, ShouldBeNil)
		So(string(raw), ShouldEqual, `{}`)
	})
}

func TestWeekLabel(t *testing.T) {
	Convey("Given dates across a month", t, func() {
		So(summary.WeekLabel(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-M09-W1")
		So(summary.WeekLabel(time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-M09-W1")
		So(summary.WeekLabel(time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-M09-W2")
		So(summary.WeekLabel(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2025-M12-W5")
	})

	Convey("Given a build time", t, func() {
		s := summary.NewBuilder(nil).Build(nil, now)
		So(s.Week, ShouldEqual, "2025-M09-W2")
		So(s.LastUpdated, ShouldEqual, "2025-09-14T18:30:00Z")
		So(s.TopSchoolsThisWeek, ShouldBeEmpty)
	})
}

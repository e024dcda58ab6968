package boxscore_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const summaryFixture = `{
  "header": {
    "id": "401772790",
    "competitions": [{
      "date": "2025-09-08T00:20Z",
      "status": {"type": {"state": "post", "completed": true, "shortDetail": "Final"}},
      "competitors": [
        {"homeAway": "home", "score": "34", "team": {"id": "2", "abbreviation": "BUF", "displayName": "Buffalo Bills"}},
        {"homeAway": "away", "score": "10", "team": {"id": "33", "abbreviation": "BAL", "displayName": "Baltimore Ravens"}}
      ]
    }]
  },
  "boxscore": {
    "players": [
      {
        "team": {"id": "2", "abbreviation": "BUF"},
        "statistics": [
          {"name": "passing", "keys": ["completions/passingAttempts", "passingYards", "passingTouchdowns", "interceptions"],
           "athletes": [{"athlete": {"id": "3918298"}, "stats": ["24/33", "251", "2", "1"]}]},
          {"name": "rushing", "keys": ["rushingAttempts", "rushingYards", "rushingTouchdowns"],
           "athletes": [{"athlete": {"id": "3918298"}, "stats": ["6", "30", "1"]},
                        {"athlete": {"id": ""}, "stats": ["1", "1", "0"]}]},
          {"name": "defensive", "keys": ["totalTackles", "soloTackles", "sacks"],
           "athletes": [{"athlete": {"id": "4240603"}, "stats": ["7", "5", "0"]},
                        {"athlete": {"id": "4361370"}, "stats": ["3", "2", "1.5"]}]},
          {"name": "interceptions", "keys": ["interceptions", "interceptionYards"],
           "athletes": [{"athlete": {"id": "4240603"}, "stats": ["1", "22"]}]},
          {"name": "kicking", "keys": ["fieldGoalsMade/fieldGoalAttempts", "extraPointsMade/extraPointAttempts"],
           "athletes": [{"athlete": {"id": "3050478"}, "stats": ["2/3", "4/4"]}]},
          {"name": "kickReturns", "keys": ["kickReturns", "kickReturnYards", "kickReturnTouchdowns"],
           "athletes": [{"athlete": {"id": "4569987"}, "stats": ["2", "48", "0"]}]},
          {"name": "puntReturns", "keys": ["puntReturns", "puntReturnYards", "puntReturnTouchdowns"],
           "athletes": [{"athlete": {"id": "4569987"}, "stats": ["3", "41", "1"]}]},
          {"name": "punting", "keys": ["punts"],
           "athletes": [{"athlete": {"id": "9999"}, "stats": ["4"]}]}
        ]
      },
      {
        "team": {"id": "33", "abbreviation": "BAL"},
        "statistics": [
          {"name": "receiving", "keys": ["receptions", "receivingYards", "receivingTouchdowns"],
           "athletes": [{"athlete": {"id": "4362628"}, "stats": ["5", "", "abc"]}]}
        ]
      }
    ]
  }
}`

func decodeFixture() boxscore.Payload {
	var p boxscore.Payload
	if err := json.Unmarshal([]byte(summaryFixture), &p); err != nil {
		panic(err)
	}
	return p
}

func TestNormalize(t *testing.T) {
	Convey("Given a decoded box score", t, func() {
		out := boxscore.Normalize(decodeFixture().Boxscore.Players)

		Convey("Then passing composites are split and sibling groups stay nil", func() {
			qb := out["3918298"]
			So(qb, ShouldNotBeNil)
			So(qb.TeamAbbr, ShouldEqual, "BUF")
			So(*qb.Stats.Passing, ShouldResemble, model.PassingStats{Completions: 24, Attempts: 33, Yards: 251, Touchdowns: 2, Interceptions: 1})
			So(*qb.Stats.Rushing, ShouldResemble, model.RushingStats{Attempts: 6, Yards: 30, Touchdowns: 1})
			So(qb.Stats.Receiving, ShouldBeNil)
			So(qb.Stats.Defense, ShouldBeNil)
			So(qb.Stats.Kicking, ShouldBeNil)
			So(qb.Stats.Returns, ShouldBeNil)
		})

		Convey("Then defensive and interceptions merge into one defense group", func() {
			db := out["4240603"]
			So(db, ShouldNotBeNil)
			So(*db.Stats.Defense, ShouldResemble, model.DefenseStats{Tackles: 7, Sacks: 0, Interceptions: 1})
		})

		Convey("Then fractional sacks survive", func() {
			So(out["4361370"].Stats.Defense.Sacks, ShouldEqual, 1.5)
			So(out["4361370"].Stats.Defense.Interceptions, ShouldEqual, 0)
		})

		Convey("Then kicking composites are split", func() {
			So(*out["3050478"].Stats.Kicking, ShouldResemble, model.KickingStats{
				FieldGoalsMade: 2, FieldGoalsAttempted: 3, ExtraPointsMade: 4, ExtraPointsAttempted: 4,
			})
		})

		Convey("Then kick and punt returns add up", func() {
			So(*out["4569987"].Stats.Returns, ShouldResemble, model.ReturnStats{Count: 5, Yards: 89, Touchdowns: 1})
		})

		Convey("Then bad numbers coerce to zero", func() {
			wr := out["4362628"]
			So(wr.TeamAbbr, ShouldEqual, "BAL")
			So(*wr.Stats.Receiving, ShouldResemble, model.ReceivingStats{Receptions: 5})
		})

		Convey("Then blank ids and unknown categories are skipped", func() {
			_, ok := out[""]
			So(ok, ShouldBeFalse)
			_, ok = out["9999"]
			So(ok, ShouldBeFalse)
			So(len(out), ShouldEqual, 6)
		})
	})

	Convey("Given the interceptions category before defensive", t, func() {
		blocks := []boxscore.TeamBlock{{
			Team: boxscore.Team{Abbreviation: "KC"},
			Statistics: []boxscore.Category{
				{Name: "interceptions", Keys: []string{"interceptions"}, Athletes: []boxscore.AthleteLine{
					{Athlete: boxscore.Athlete{ID: "1"}, Stats: []json.RawMessage{json.RawMessage(`"2"`)}},
				}},
				{Name: "defensive", Keys: []string{"totalTackles", "sacks"}, Athletes: []boxscore.AthleteLine{
					{Athlete: boxscore.Athlete{ID: "1"}, Stats: []json.RawMessage{json.RawMessage(`"4"`), json.RawMessage(`"0.5"`)}},
				}},
			},
		}}

		out := boxscore.Normalize(blocks)

		Convey("Then neither category clobbers the other", func() {
			So(*out["1"].Stats.Defense, ShouldResemble, model.DefenseStats{Tackles: 4, Sacks: 0.5, Interceptions: 2})
		})
	})

	Convey("Given an athlete with fewer values than keys", t, func() {
		blocks := []boxscore.TeamBlock{{
			Team: boxscore.Team{Abbreviation: "NYJ"},
			Statistics: []boxscore.Category{
				{Name: "rushing", Keys: []string{"rushingAttempts", "rushingYards", "rushingTouchdowns"}, Athletes: []boxscore.AthleteLine{
					{Athlete: boxscore.Athlete{ID: "7"}, Stats: []json.RawMessage{json.RawMessage(`"3"`)}},
				}},
			},
		}}

		Convey("Then the missing columns read as zero", func() {
			So(func() { boxscore.Normalize(blocks) }, ShouldNotPanic)
			So(*boxscore.Normalize(blocks)["7"].Stats.Rushing, ShouldResemble, model.RushingStats{Attempts: 3})
		})
	})

	Convey("Given no team blocks", t, func() {
		So(boxscore.Normalize(nil), ShouldBeEmpty)
	})
}

func TestExtractGameMeta(t *testing.T) {
	Convey("Given a final game header", t, func() {
		meta, err := boxscore.ExtractGameMeta(decodeFixture().Header)

		Convey("Then id, date and status are read", func() {
			So(err, ShouldBeNil)
			So(meta.GameID, ShouldEqual, "401772790")
			So(meta.Date, ShouldEqual, "2025-09-08")
			So(meta.Status, ShouldEqual, model.StatusFinal)
			So(meta.ClockText, ShouldBeNil)
		})

		Convey("Then both teams are linked to each other", func() {
			buf := meta.Teams["BUF"]
			So(buf.IsHome, ShouldBeTrue)
			So(buf.TeamScore, ShouldEqual, 34)
			So(*buf.OpponentAbbr, ShouldEqual, "BAL")
			So(*buf.OpponentName, ShouldEqual, "Baltimore Ravens")
			So(*buf.OpponentScore, ShouldEqual, 10)
			So(*buf.ResultText(), ShouldEqual, "W 34–10")

			bal := meta.Teams["BAL"]
			So(bal.IsHome, ShouldBeFalse)
			So(*bal.OpponentAbbr, ShouldEqual, "BUF")
			So(*bal.ResultText(), ShouldEqual, "L 10–34")
		})
	})

	Convey("Given a game in progress", t, func() {
		h := decodeFixture().Header
		h.Competitions[0].Status.Type = boxscore.StatusType{State: "in", ShortDetail: "7:42 - 3rd"}

		meta, err := boxscore.ExtractGameMeta(h)

		Convey("Then the clock text is kept", func() {
			So(err, ShouldBeNil)
			So(meta.Status, ShouldEqual, model.StatusInProgress)
			So(*meta.ClockText, ShouldEqual, "7:42 - 3rd")
		})
	})

	Convey("Given a game not started", t, func() {
		h := decodeFixture().Header
		h.Competitions[0].Status.Type = boxscore.StatusType{State: "pre", ShortDetail: "9/14 - 1:00 PM EDT"}

		meta, _ := boxscore.ExtractGameMeta(h)

		Convey("Then it is scheduled without a clock", func() {
			So(meta.Status, ShouldEqual, model.StatusScheduled)
			So(meta.ClockText, ShouldBeNil)
		})
	})

	Convey("Given a header with three competitors", t, func() {
		h := decodeFixture().Header
		h.Competitions[0].Competitors = append(h.Competitions[0].Competitors, boxscore.Competitor{
			HomeAway: "away", Score: json.RawMessage(`"0"`), Team: boxscore.Team{Abbreviation: "MIA"},
		})

		meta, err := boxscore.ExtractGameMeta(h)

		Convey("Then every team exists without opponent linkage", func() {
			So(err, ShouldBeNil)
			So(len(meta.Teams), ShouldEqual, 3)
			for _, tr := range meta.Teams {
				So(tr.OpponentAbbr, ShouldBeNil)
				So(tr.OpponentScore, ShouldBeNil)
				So(tr.ResultText(), ShouldBeNil)
			}
		})
	})

	Convey("Given date variants", t, func() {
		h := decodeFixture().Header

		h.Competitions[0].Date = "2025-09-07T23:59:59-05:00"
		meta, _ := boxscore.ExtractGameMeta(h)
		So(meta.Date, ShouldEqual, "2025-09-08")

		h.Competitions[0].Date = "2025-09-07 garbage"
		meta, _ = boxscore.ExtractGameMeta(h)
		So(meta.Date, ShouldEqual, "2025-09-07")

		h.Competitions[0].Date = ""
		meta, _ = boxscore.ExtractGameMeta(h)
		So(meta.Date, ShouldEqual, "")
	})

	Convey("Given malformed headers", t, func() {
		Convey("When the competition block is missing", func() {
			_, err := boxscore.ExtractGameMeta(boxscore.Header{ID: "1"})
			So(errors.Is(err, boxscore.ErrMalformedPayload), ShouldBeTrue)
		})

		Convey("When the game id is missing", func() {
			h := decodeFixture().Header
			h.ID = ""
			_, err := boxscore.ExtractGameMeta(h)
			So(errors.Is(err, boxscore.ErrMalformedPayload), ShouldBeTrue)
		})
	})
}

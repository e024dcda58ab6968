package boxscore

import (
	"fmt"
	"regexp"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
)

// Timestamp layouts seen on competition dates, most specific first.
var dateLayouts = []string{ //nolint:gochecknoglobals // static table
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z",
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ExtractGameMeta reads the game id, date, status and per-team results from
// the header. Opponent fields are only linked when there are exactly two
// competitors.
func ExtractGameMeta(h Header) (model.GameMeta, error) {
	id := h.ID.String()
	if id == "" {
		return model.GameMeta{}, fmt.Errorf("%w: missing game id", ErrMalformedPayload)
	}
	if len(h.Competitions) == 0 {
		return model.GameMeta{}, fmt.Errorf("%w: game %s has no competition", ErrMalformedPayload, id)
	}
	comp := h.Competitions[0]

	meta := model.GameMeta{
		GameID: id,
		Date:   gameDate(comp.Date),
		Status: gameStatus(comp.Status.Type),
		Teams:  make(map[string]model.TeamResult, len(comp.Competitors)),
	}
	if meta.Status == model.StatusInProgress && comp.Status.Type.ShortDetail != "" {
		clock := comp.Status.Type.ShortDetail
		meta.ClockText = &clock
	}

	for _, c := range comp.Competitors {
		abbr := c.Team.Abbreviation
		if abbr == "" {
			continue
		}
		meta.Teams[abbr] = model.TeamResult{
			TeamAbbr:  abbr,
			TeamName:  c.Team.DisplayName,
			IsHome:    c.HomeAway == "home",
			TeamScore: ParseInt(c.Score),
		}
	}

	if len(comp.Competitors) == 2 {
		a, b := comp.Competitors[0], comp.Competitors[1]
		link(meta.Teams, a, b)
		link(meta.Teams, b, a)
	}
	return meta, nil
}

func link(teams map[string]model.TeamResult, self, opp Competitor) {
	tr, ok := teams[self.Team.Abbreviation]
	if !ok || opp.Team.Abbreviation == "" {
		return
	}
	oppAbbr := opp.Team.Abbreviation
	oppName := opp.Team.DisplayName
	oppScore := ParseInt(opp.Score)
	tr.OpponentAbbr = &oppAbbr
	tr.OpponentName = &oppName
	tr.OpponentScore = &oppScore
	teams[self.Team.Abbreviation] = tr
}

func gameStatus(t StatusType) model.GameStatus {
	switch {
	case t.State == "in":
		return model.StatusInProgress
	case t.Completed:
		return model.StatusFinal
	default:
		return model.StatusScheduled
	}
}

// gameDate truncates a UTC instant to YYYY-MM-DD. Unparseable values keep a
// leading calendar date if they have one, otherwise the date is empty.
func gameDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return datePrefix.FindString(s)
}

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/gridiron/internal/domain/boxscore"
)

// Team is one NFL franchise from the team list.
type Team struct {
	ID   string
	Abbr string
	Name string
}

// Athlete is one player from a team roster.
type Athlete struct {
	ID       string
	Name     string
	Position string
	College  string
}

// Event is one game on the scoreboard.
type Event struct {
	ID        string
	Date      string
	State     string // pre, in, post
	Completed bool
}

// Scoreboard is the current week's slate.
type Scoreboard struct {
	Week   int
	Events []Event
}

// StartedGameIDs returns the ids of games that are in progress or over, in
// scoreboard order.
func (s Scoreboard) StartedGameIDs() []string {
	ids := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		if e.ID == "" {
			continue
		}
		if e.Completed || e.State == "in" || e.State == "post" {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team boxscore.Team `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type rosterResponse struct {
	Athletes []json.RawMessage `json:"athletes"`
}

type rosterGroup struct {
	Items *[]rawAthlete `json:"items"`
}

type rawAthlete struct {
	ID          boxscore.FlexString `json:"id"`
	DisplayName string              `json:"displayName"`
	FullName    string              `json:"fullName"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	College collegeName `json:"college"`
}

// collegeName accepts either a plain string or an object carrying text,
// name or shortName.
type collegeName string

func (c *collegeName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = collegeName(strings.TrimSpace(s))
		return nil
	}
	var obj struct {
		Text      string `json:"text"`
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, v := range []string{obj.Text, obj.Name, obj.ShortName} {
		if v = strings.TrimSpace(v); v != "" {
			*c = collegeName(v)
			return nil
		}
	}
	*c = ""
	return nil
}

func (a rawAthlete) athlete() Athlete {
	name := a.DisplayName
	if name == "" {
		name = a.FullName
	}
	return Athlete{
		ID:       strings.TrimSpace(a.ID.String()),
		Name:     strings.TrimSpace(name),
		Position: strings.TrimSpace(a.Position.Abbreviation),
		College:  string(a.College),
	}
}

type scoreboardResponse struct {
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Events []struct {
		ID           boxscore.FlexString    `json:"id"`
		Date         string                 `json:"date"`
		Status       *boxscore.Status       `json:"status"`
		Competitions []boxscore.Competition `json:"competitions"`
	} `json:"events"`
}

// FetchTeams returns every team in the league.
func (c *HTTPClient) FetchTeams(ctx context.Context) ([]Team, error) {
	body, err := c.get(ctx, c.teamsURL, "teams")
	if err != nil {
		return nil, err
	}
	var resp teamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: teams: %v", ErrDecode, err)
	}
	if len(resp.Sports) == 0 || len(resp.Sports[0].Leagues) == 0 {
		return nil, fmt.Errorf("%w: teams: no league", ErrUnexpectedShape)
	}

	var teams []Team
	for _, t := range resp.Sports[0].Leagues[0].Teams {
		id := strings.TrimSpace(t.Team.ID.String())
		if id == "" {
			continue
		}
		teams = append(teams, Team{
			ID:   id,
			Abbr: strings.ToUpper(strings.TrimSpace(t.Team.Abbreviation)),
			Name: strings.TrimSpace(t.Team.DisplayName),
		})
	}
	return teams, nil
}

// FetchRoster returns the athletes on one team. Rosters grouped by unit are
// flattened in document order.
func (c *HTTPClient) FetchRoster(ctx context.Context, teamID string) ([]Athlete, error) {
	what := "roster " + teamID
	body, err := c.get(ctx, strings.TrimRight(c.teamsURL, "/")+"/"+url.PathEscape(teamID)+"/roster", what)
	if err != nil {
		return nil, err
	}
	var resp rosterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, what, err)
	}
	if resp.Athletes == nil {
		return nil, fmt.Errorf("%w: %s: missing athletes", ErrUnexpectedShape, what)
	}

	var out []Athlete
	for _, raw := range resp.Athletes {
		var group rosterGroup
		if err := json.Unmarshal(raw, &group); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, what, err)
		}
		if group.Items != nil {
			for _, a := range *group.Items {
				out = append(out, a.athlete())
			}
			continue
		}
		var a rawAthlete
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, what, err)
		}
		if a.ID.String() != "" {
			out = append(out, a.athlete())
		}
	}
	return out, nil
}

// FetchScoreboard returns the current week's games.
func (c *HTTPClient) FetchScoreboard(ctx context.Context) (Scoreboard, error) {
	body, err := c.get(ctx, c.scoreboardURL, "scoreboard")
	if err != nil {
		return Scoreboard{}, err
	}
	var resp scoreboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Scoreboard{}, fmt.Errorf("%w: scoreboard: %v", ErrDecode, err)
	}

	sb := Scoreboard{Week: resp.Week.Number, Events: make([]Event, 0, len(resp.Events))}
	for _, ev := range resp.Events {
		e := Event{ID: strings.TrimSpace(ev.ID.String()), Date: ev.Date}
		status := ev.Status
		if status == nil && len(ev.Competitions) > 0 {
			status = &ev.Competitions[0].Status
		}
		if status != nil {
			e.State = status.Type.State
			e.Completed = status.Type.Completed
		}
		if e.Date == "" && len(ev.Competitions) > 0 {
			e.Date = ev.Competitions[0].Date
		}
		sb.Events = append(sb.Events, e)
	}
	return sb, nil
}

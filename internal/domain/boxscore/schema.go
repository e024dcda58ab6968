// Package boxscore turns a provider box score into StatBundles and game
// metadata. Payloads are decoded into the typed schema below before any
// normalization runs.
package boxscore

import (
	"bytes"
	"encoding/json"
)

// Payload is the part of a provider game summary we read.
type Payload struct {
	Header   Header   `json:"header"`
	Boxscore Boxscore `json:"boxscore"`
}

// Header carries the game id and its competitions.
type Header struct {
	ID           FlexString    `json:"id"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Date        string       `json:"date"`
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	State       string `json:"state"` // pre, in, post
	Completed   bool   `json:"completed"`
	ShortDetail string `json:"shortDetail"`
}

type Competitor struct {
	HomeAway string          `json:"homeAway"`
	Score    json.RawMessage `json:"score"`
	Team     Team            `json:"team"`
}

type Team struct {
	ID           FlexString `json:"id"`
	Abbreviation string     `json:"abbreviation"`
	DisplayName  string     `json:"displayName"`
}

// Boxscore holds one block per team.
type Boxscore struct {
	Players []TeamBlock `json:"players"`
}

type TeamBlock struct {
	Team       Team       `json:"team"`
	Statistics []Category `json:"statistics"`
}

// Category is one stat table. Keys name the columns of every athlete's Stats.
type Category struct {
	Name     string        `json:"name"`
	Keys     []string      `json:"keys"`
	Athletes []AthleteLine `json:"athletes"`
}

type AthleteLine struct {
	Athlete Athlete           `json:"athlete"`
	Stats   []json.RawMessage `json:"stats"`
}

type Athlete struct {
	ID          FlexString `json:"id"`
	DisplayName string     `json:"displayName"`
}

// FlexString accepts a JSON string or number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw value.
func (f FlexString) String() string { return string(f) }

// scalarText returns a raw JSON scalar as text: strings are unquoted, numbers
// kept verbatim, anything else is empty.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	default:
		return ""
	}
}

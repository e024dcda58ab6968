package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// CollegeAggregate is the per-college page document. It is rebuilt from
// scratch on every pass.
type CollegeAggregate struct {
	College    string          `json:"college"`
	Slug       string          `json:"slug"`
	Conference string          `json:"conference"`
	Group      string          `json:"group"`
	Players    []PlayerSummary `json:"players"`
}

// PlayerSummary is a denormalized player row inside a CollegeAggregate.
type PlayerSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	NFLTeam  string   `json:"nflTeam"`
	LastGame *GameLog `json:"lastGame"`
}

// HomeSummary is the league-wide landing document.
type HomeSummary struct {
	Week               string           `json:"week"`
	LastUpdated        string           `json:"lastUpdated"`
	ConferenceGroups   ConferenceGroups `json:"conferenceGroups"`
	TopSchoolsThisWeek []SchoolScore    `json:"topSchoolsThisWeek"`
	PositionLeaders    PositionLeaders  `json:"positionLeaders"`
}

// CollegeCount is one college inside a conference group.
type CollegeCount struct {
	College     string `json:"college"`
	Slug        string `json:"slug"`
	PlayerCount int    `json:"playerCount"`
}

// ConferenceGroup is one key of HomeSummary.conferenceGroups.
type ConferenceGroup struct {
	Name     string
	Colleges []CollegeCount
}

// ConferenceGroups marshals as a JSON object whose keys keep slice order.
type ConferenceGroups []ConferenceGroup

// MarshalJSON implements json.Marshaler.
func (c ConferenceGroups) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(len(c), func(i int) (string, any) {
		colleges := c[i].Colleges
		if colleges == nil {
			colleges = []CollegeCount{}
		}
		return c[i].Name, colleges
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ConferenceGroups) UnmarshalJSON(data []byte) error {
	*c = nil
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var colleges []CollegeCount
		if err := dec.Decode(&colleges); err != nil {
			return err
		}
		*c = append(*c, ConferenceGroup{Name: key, Colleges: colleges})
		return nil
	})
}

// encodeOrderedObject writes n key/value pairs as a JSON object in index order.
func encodeOrderedObject(n int, entry func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, v := entry(i)
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SchoolScore is one row of topSchoolsThisWeek.
type SchoolScore struct {
	College         string  `json:"college"`
	Slug            string  `json:"slug"`
	ProductionScore float64 `json:"productionScore"`
	LatestGameDate  *string `json:"latestGameDate"`
}

// PositionCount is one college inside a position group.
type PositionCount struct {
	College string `json:"college"`
	Slug    string `json:"slug"`
	Count   int    `json:"count"`
}

// PositionLeader ranks colleges inside one position group.
type PositionLeader struct {
	Group    string
	Colleges []PositionCount
}

// PositionLeaders marshals as a JSON object keyed by position group in
// slice order.
type PositionLeaders []PositionLeader

// MarshalJSON implements json.Marshaler.
func (p PositionLeaders) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(len(p), func(i int) (string, any) {
		colleges := p[i].Colleges
		if colleges == nil {
			colleges = []PositionCount{}
		}
		return p[i].Group, colleges
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PositionLeaders) UnmarshalJSON(data []byte) error {
	*p = nil
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var colleges []PositionCount
		if err := dec.Decode(&colleges); err != nil {
			return err
		}
		*p = append(*p, PositionLeader{Group: key, Colleges: colleges})
		return nil
	})
}

// RunReport is written to meta.json after every run.
type RunReport struct {
	RunID          string    `json:"runId"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
	GamesRequested int       `json:"gamesRequested"`
	GamesProcessed int       `json:"gamesProcessed"`
	GamesFailed    int       `json:"gamesFailed"`
	PlayersUpdated int       `json:"playersUpdated"`
	Warnings       int       `json:"warnings"`
	Aggregates     int       `json:"aggregates"`
}

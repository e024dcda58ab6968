// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Player is the persisted per-player document.
type Player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	College     string   `json:"college"`
	CollegeSlug string   `json:"collegeSlug"`
	Position    string   `json:"position"`
	NFLTeam     string   `json:"nflTeam"`
	TeamAbbr    string   `json:"teamAbbr"`
	LastGameID  *string  `json:"lastGameId"`
	GameLogs    GameLogs `json:"gameLogs"`
}

// LastGame returns the game log lastGameId points at.
func (p *Player) LastGame() (GameLog, bool) {
	if p.LastGameID == nil {
		return GameLog{}, false
	}
	return p.GameLogs.Get(*p.LastGameID)
}

// GameLog is one player's participation in one game.
type GameLog struct {
	GameID          string     `json:"gameId"`
	Date            string     `json:"date"`
	TeamAbbr        string     `json:"teamAbbr"`
	OpponentAbbr    *string    `json:"opponentAbbr"`
	OpponentName    *string    `json:"opponentName"`
	IsHome          bool       `json:"isHome"`
	TeamScore       int        `json:"teamScore"`
	OpponentScore   *int       `json:"opponentScore"`
	Status          GameStatus `json:"status"`
	ClockText       *string    `json:"clockText"`
	ResultText      *string    `json:"resultText"`
	ProductionScore float64    `json:"productionScore"`
	PlayerStats     StatBundle `json:"playerStats"`
}

// GameLogs maps game id to GameLog and keeps insertion order. The zero value
// is ready to use.
type GameLogs struct {
	order   []string
	entries map[string]GameLog
}

// Set stores log under log.GameID. An existing entry is replaced in place.
func (g *GameLogs) Set(log GameLog) {
	if g.entries == nil {
		g.entries = make(map[string]GameLog)
	}
	if _, ok := g.entries[log.GameID]; !ok {
		g.order = append(g.order, log.GameID)
	}
	g.entries[log.GameID] = log
}

// Get returns the entry for gameID.
func (g *GameLogs) Get(gameID string) (GameLog, bool) {
	log, ok := g.entries[gameID]
	return log, ok
}

// Len returns the number of entries.
func (g *GameLogs) Len() int { return len(g.order) }

// Keys returns game ids in insertion order.
func (g *GameLogs) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// MarshalJSON writes a JSON object with keys in insertion order.
func (g GameLogs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.entries[id])
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

// UnmarshalJSON reads a JSON object, keeping key order. null yields an empty map.
func (g *GameLogs) UnmarshalJSON(data []byte) error {
	*g = GameLogs{}
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var log GameLog
		if err := dec.Decode(&log); err != nil {
			return err
		}
		if log.GameID == "" {
			log.GameID = key
		}
		if log.GameID != key {
			return fmt.Errorf("game log key %q holds gameId %q", key, log.GameID)
		}
		g.Set(log)
		return nil
	})
}

// decodeOrderedObject walks a JSON object and hands each value to fn in
// document order.
func decodeOrderedObject(data []byte, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// RosterEntry is the baseline identity for a player, from allPlayers.json.
type RosterEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	College     string `json:"college"`
	Position    string `json:"position"`
	NFLTeam     string `json:"nflTeam"`
	NFLTeamAbbr string `json:"nflTeamAbbr"`
}

// Baseline builds an empty Player document from a roster entry.
func (r RosterEntry) Baseline(collegeSlug string) Player {
	return Player{
		ID:          r.ID,
		Name:        r.Name,
		College:     r.College,
		CollegeSlug: collegeSlug,
		Position:    r.Position,
		NFLTeam:     r.NFLTeam,
		TeamAbbr:    r.NFLTeamAbbr,
	}
}

package model

// GameStatus follows scheduled -> in_progress -> final.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
)

// GameMeta is the per-game header extracted from a provider payload.
type GameMeta struct {
	GameID    string                `json:"gameId"`
	Date      string                `json:"date"` // YYYY-MM-DD, UTC
	Status    GameStatus            `json:"status"`
	ClockText *string               `json:"clockText"`
	Teams     map[string]TeamResult `json:"teams"` // keyed by team abbreviation
}

// TeamResult is one side of a game. Opponent fields are nil when the provider
// did not report exactly two competitors.
type TeamResult struct {
	TeamAbbr      string  `json:"teamAbbr"`
	TeamName      string  `json:"teamName"`
	IsHome        bool    `json:"isHome"`
	TeamScore     int     `json:"teamScore"`
	OpponentAbbr  *string `json:"opponentAbbr,omitempty"`
	OpponentName  *string `json:"opponentName,omitempty"`
	OpponentScore *int    `json:"opponentScore,omitempty"`
}

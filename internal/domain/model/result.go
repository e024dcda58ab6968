package model

import "fmt"

// ResultText renders "W 34–10", "L 17–20" or "T 20–20" from this team's view.
// It is nil when the opponent score is unknown.
func (t TeamResult) ResultText() *string {
	if t.OpponentScore == nil {
		return nil
	}
	o := *t.OpponentScore
	letter := "T"
	switch {
	case t.TeamScore > o:
		letter = "W"
	case t.TeamScore < o:
		letter = "L"
	}
	s := fmt.Sprintf("%s %d–%d", letter, t.TeamScore, o)
	return &s
}

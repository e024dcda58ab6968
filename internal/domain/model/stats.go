package model

// StatBundle holds one player's stat lines for one game. A nil group means the
// player did not appear in that category, which is different from a zero line.
type StatBundle struct {
	Passing   *PassingStats   `json:"passing"`
	Rushing   *RushingStats   `json:"rushing"`
	Receiving *ReceivingStats `json:"receiving"`
	Defense   *DefenseStats   `json:"defense"`
	Kicking   *KickingStats   `json:"kicking"`
	Returns   *ReturnStats    `json:"returns"`
}

// Empty reports whether every group is nil.
func (b StatBundle) Empty() bool {
	return b.Passing == nil && b.Rushing == nil && b.Receiving == nil &&
		b.Defense == nil && b.Kicking == nil && b.Returns == nil
}

type PassingStats struct {
	Completions   int `json:"completions"`
	Attempts      int `json:"attempts"`
	Yards         int `json:"yards"`
	Touchdowns    int `json:"touchdowns"`
	Interceptions int `json:"interceptions"`
}

type RushingStats struct {
	Attempts   int `json:"attempts"`
	Yards      int `json:"yards"`
	Touchdowns int `json:"touchdowns"`
}

type ReceivingStats struct {
	Receptions int `json:"receptions"`
	Yards      int `json:"yards"`
	Touchdowns int `json:"touchdowns"`
}

// DefenseStats merges the provider's defensive and interceptions categories.
type DefenseStats struct {
	Tackles       int     `json:"tackles"`
	Sacks         float64 `json:"sacks"`
	Interceptions int     `json:"interceptions"`
}

type KickingStats struct {
	FieldGoalsMade       int `json:"fieldGoalsMade"`
	FieldGoalsAttempted  int `json:"fieldGoalsAttempted"`
	ExtraPointsMade      int `json:"extraPointsMade"`
	ExtraPointsAttempted int `json:"extraPointsAttempted"`
}

// ReturnStats sums kick and punt returns.
type ReturnStats struct {
	Count      int `json:"count"`
	Yards      int `json:"yards"`
	Touchdowns int `json:"touchdowns"`
}

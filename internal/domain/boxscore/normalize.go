package boxscore

import (
	"encoding/json"

	"github.com/okian/gridiron/internal/domain/model"
)

// Provider category names.
const (
	CategoryPassing       = "passing"
	CategoryRushing       = "rushing"
	CategoryReceiving     = "receiving"
	CategoryDefensive     = "defensive"
	CategoryInterceptions = "interceptions"
	CategoryKicking       = "kicking"
	CategoryKickReturns   = "kickReturns"
	CategoryPuntReturns   = "puntReturns"
)

// PlayerStats is one athlete's normalized line for one game.
type PlayerStats struct {
	AthleteID string
	TeamAbbr  string
	Stats     model.StatBundle
}

// Normalize builds a StatBundle per athlete id from the box score team
// blocks. Athletes that appear in no recognized category are absent from the
// result; callers record them with all six groups nil.
func Normalize(teams []TeamBlock) map[string]*PlayerStats {
	out := make(map[string]*PlayerStats)

	for _, team := range teams {
		for _, cat := range team.Statistics {
			apply, ok := categoryAppliers[cat.Name]
			if !ok {
				continue
			}
			for _, line := range cat.Athletes {
				id := line.Athlete.ID.String()
				if id == "" {
					continue
				}
				ps, ok := out[id]
				if !ok {
					ps = &PlayerStats{AthleteID: id}
					out[id] = ps
				}
				ps.TeamAbbr = team.Team.Abbreviation
				apply(&ps.Stats, zip(cat.Keys, line.Stats))
			}
		}
	}
	return out
}

// row is one athlete's values keyed by column name.
type row map[string]json.RawMessage

func zip(keys []string, values []json.RawMessage) row {
	r := make(row, len(keys))
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		r[k] = values[i]
	}
	return r
}

func (r row) intVal(key string) int                { return ParseInt(r[key]) }
func (r row) floatVal(key string) float64          { return ParseFloat(r[key]) }
func (r row) madeAttempts(key string) MadeAttempts { return ParseMadeAttempts(r[key]) }

var categoryAppliers = map[string]func(*model.StatBundle, row){ //nolint:gochecknoglobals // static dispatch table
	CategoryPassing:       applyPassing,
	CategoryRushing:       applyRushing,
	CategoryReceiving:     applyReceiving,
	CategoryDefensive:     applyDefensive,
	CategoryInterceptions: applyInterceptions,
	CategoryKicking:       applyKicking,
	CategoryKickReturns:   applyKickReturns,
	CategoryPuntReturns:   applyPuntReturns,
}

func applyPassing(b *model.StatBundle, r row) {
	ca := r.madeAttempts("completions/passingAttempts")
	b.Passing = &model.PassingStats{
		Completions:   ca.Made,
		Attempts:      ca.Attempts,
		Yards:         r.intVal("passingYards"),
		Touchdowns:    r.intVal("passingTouchdowns"),
		Interceptions: r.intVal("interceptions"),
	}
}

func applyRushing(b *model.StatBundle, r row) {
	b.Rushing = &model.RushingStats{
		Attempts:   r.intVal("rushingAttempts"),
		Yards:      r.intVal("rushingYards"),
		Touchdowns: r.intVal("rushingTouchdowns"),
	}
}

func applyReceiving(b *model.StatBundle, r row) {
	b.Receiving = &model.ReceivingStats{
		Receptions: r.intVal("receptions"),
		Yards:      r.intVal("receivingYards"),
		Touchdowns: r.intVal("receivingTouchdowns"),
	}
}

// defensive and interceptions share one group; each only writes its own fields.
func applyDefensive(b *model.StatBundle, r row) {
	if b.Defense == nil {
		b.Defense = &model.DefenseStats{}
	}
	b.Defense.Tackles = r.intVal("totalTackles")
	b.Defense.Sacks = r.floatVal("sacks")
}

func applyInterceptions(b *model.StatBundle, r row) {
	if b.Defense == nil {
		b.Defense = &model.DefenseStats{}
	}
	b.Defense.Interceptions = r.intVal("interceptions")
}

func applyKicking(b *model.StatBundle, r row) {
	fg := r.madeAttempts("fieldGoalsMade/fieldGoalAttempts")
	xp := r.madeAttempts("extraPointsMade/extraPointAttempts")
	b.Kicking = &model.KickingStats{
		FieldGoalsMade:       fg.Made,
		FieldGoalsAttempted:  fg.Attempts,
		ExtraPointsMade:      xp.Made,
		ExtraPointsAttempted: xp.Attempts,
	}
}

// Kick and punt returns add into one group.
func applyKickReturns(b *model.StatBundle, r row) {
	addReturns(b, r.intVal("kickReturns"), r.intVal("kickReturnYards"), r.intVal("kickReturnTouchdowns"))
}

func applyPuntReturns(b *model.StatBundle, r row) {
	addReturns(b, r.intVal("puntReturns"), r.intVal("puntReturnYards"), r.intVal("puntReturnTouchdowns"))
}

func addReturns(b *model.StatBundle, count, yards, tds int) {
	if b.Returns == nil {
		b.Returns = &model.ReturnStats{}
	}
	b.Returns.Count += count
	b.Returns.Yards += yards
	b.Returns.Touchdowns += tds
}

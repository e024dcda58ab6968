// Package roster builds and loads the baseline player list and reads the
// game id list.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
)

// rawEntry accepts both the camelCase and snake_case spellings found in
// roster exports.
type rawEntry struct {
	ID               boxscore.FlexString `json:"id"`
	Name             string              `json:"name"`
	College          string              `json:"college"`
	Position         string              `json:"position"`
	NFLTeam          string              `json:"nflTeam"`
	NFLTeamSnake     string              `json:"nfl_team"`
	NFLTeamAbbr      string              `json:"nflTeamAbbr"`
	NFLTeamAbbrSnake string              `json:"nfl_team_abbr"`
	TeamAbbr         string              `json:"teamAbbr"`
}

func (r rawEntry) entry() model.RosterEntry {
	return model.RosterEntry{
		ID:          strings.TrimSpace(r.ID.String()),
		Name:        strings.TrimSpace(r.Name),
		College:     strings.TrimSpace(r.College),
		Position:    strings.ToUpper(strings.TrimSpace(r.Position)),
		NFLTeam:     firstNonBlank(r.NFLTeam, r.NFLTeamSnake),
		NFLTeamAbbr: strings.ToUpper(firstNonBlank(r.NFLTeamAbbr, r.NFLTeamAbbrSnake, r.TeamAbbr)),
	}
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Roster is the loaded baseline list, indexed by id and team.
type Roster struct {
	entries []model.RosterEntry
	byID    map[string]int
	byTeam  map[string][]int
}

// New indexes entries. Entries with a blank id are dropped and the first
// entry wins for a repeated id.
func New(entries []model.RosterEntry) *Roster {
	r := &Roster{
		entries: make([]model.RosterEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
		byTeam:  make(map[string][]int),
	}
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, dup := r.byID[e.ID]; dup {
			continue
		}
		i := len(r.entries)
		r.entries = append(r.entries, e)
		r.byID[e.ID] = i
		if e.NFLTeamAbbr != "" {
			r.byTeam[e.NFLTeamAbbr] = append(r.byTeam[e.NFLTeamAbbr], i)
		}
	}
	return r
}

// Load reads a roster file: a JSON array of player objects.
func Load(ctx context.Context, path string, log logger.Logger) (*Roster, error) {
	if log == nil {
		log = logger.Nop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRosterMissing, path)
		}
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRosterInvalid, path, err)
	}

	entries := make([]model.RosterEntry, 0, len(raw))
	skipped := 0
	for _, re := range raw {
		e := re.entry()
		if e.ID == "" {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	r := New(entries)
	if dups := len(entries) - r.Len(); skipped > 0 || dups > 0 {
		log.Warn(ctx, "roster entries skipped",
			logger.Int("blankId", skipped),
			logger.Int("duplicateId", dups))
	}
	log.Info(ctx, "roster loaded", logger.String("path", path), logger.Int("players", r.Len()))
	return r, nil
}

// Len returns the number of entries.
func (r *Roster) Len() int { return len(r.entries) }

// Entries returns the entries in file order.
func (r *Roster) Entries() []model.RosterEntry {
	return append([]model.RosterEntry(nil), r.entries...)
}

// Get returns the entry for id.
func (r *Roster) Get(id string) (model.RosterEntry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.RosterEntry{}, false
	}
	return r.entries[i], true
}

// OnTeam returns the entries whose NFL team abbreviation is abbr.
func (r *Roster) OnTeam(abbr string) []model.RosterEntry {
	idx := r.byTeam[strings.ToUpper(abbr)]
	out := make([]model.RosterEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.entries[i])
	}
	return out
}

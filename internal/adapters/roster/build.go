package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/gridiron/internal/adapters/provider"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
)

// League lists teams and their rosters.
type League interface {
	FetchTeams(ctx context.Context) ([]provider.Team, error)
	FetchRoster(ctx context.Context, teamID string) ([]provider.Athlete, error)
}

// BuildStats describes one roster build.
type BuildStats struct {
	Teams       int
	TeamsFailed int
	Athletes    int
	NoCollege   int
	Duplicates  int
}

// Build walks every team roster and returns the players that name a
// college, in team then roster order. A team whose roster cannot be read is
// logged and skipped. No teams, or no team read at all, is an error so a bad
// upstream never replaces a good roster with an empty one.
func Build(ctx context.Context, league League, log logger.Logger) ([]model.RosterEntry, BuildStats, error) {
	if log == nil {
		log = logger.Nop()
	}
	var st BuildStats

	teams, err := league.FetchTeams(ctx)
	if err != nil {
		return nil, st, fmt.Errorf("%w: teams: %w", ErrRosterBuild, err)
	}
	if len(teams) == 0 {
		return nil, st, fmt.Errorf("%w: no teams", ErrRosterBuild)
	}
	st.Teams = len(teams)

	seen := make(map[string]struct{})
	var entries []model.RosterEntry
	for _, team := range teams {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		athletes, err := league.FetchRoster(ctx, team.ID)
		if err != nil {
			st.TeamsFailed++
			log.Warn(ctx, "team roster skipped",
				logger.String("teamId", team.ID),
				logger.String("team", team.Name),
				logger.Error(err))
			continue
		}
		for _, a := range athletes {
			st.Athletes++
			if a.ID == "" {
				continue
			}
			if !knownCollege(a.College) {
				st.NoCollege++
				continue
			}
			if _, dup := seen[a.ID]; dup {
				st.Duplicates++
				continue
			}
			seen[a.ID] = struct{}{}
			entries = append(entries, model.RosterEntry{
				ID:          a.ID,
				Name:        a.Name,
				College:     a.College,
				Position:    strings.ToUpper(a.Position),
				NFLTeam:     team.Name,
				NFLTeamAbbr: team.Abbr,
			})
		}
	}
	if st.TeamsFailed == st.Teams {
		return nil, st, fmt.Errorf("%w: every team roster failed", ErrRosterBuild)
	}

	log.Info(ctx, "roster built",
		logger.Int("teams", st.Teams),
		logger.Int("teamsFailed", st.TeamsFailed),
		logger.Int("players", len(entries)),
		logger.Int("noCollege", st.NoCollege))
	return entries, st, nil
}

func knownCollege(c string) bool {
	c = strings.TrimSpace(c)
	return c != "" && !strings.EqualFold(c, "unknown")
}

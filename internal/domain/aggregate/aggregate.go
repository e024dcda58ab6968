// Package aggregate groups players by college into CollegeAggregate documents.
package aggregate

import (
	"sort"
	"strings"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tables"
)

// Defaults for blank player summary fields.
const (
	DefaultPlayerName = "Unknown Player"
	DefaultPosition   = "UNK"
	DefaultNFLTeam    = "Free Agent"
)

const (
	filePrefix = "collegePage_"
	fileSuffix = ".json"
)

// Builder builds aggregates against a set of classification tables.
type Builder struct {
	tables *tables.Classification
}

// NewBuilder returns a Builder. A nil table set means tables.New().
func NewBuilder(t *tables.Classification) *Builder {
	if t == nil {
		t = tables.New()
	}
	return &Builder{tables: t}
}

// Build groups players by college slug. Aggregates are sorted by slug; players
// keep input order. Players with a blank id are skipped.
func (b *Builder) Build(players []model.Player) []model.CollegeAggregate {
	bySlug := make(map[string]*model.CollegeAggregate)

	for i := range players {
		p := &players[i]
		if strings.TrimSpace(p.ID) == "" {
			continue
		}

		college := tables.CollegeName(p.College)
		slug := b.tables.Slug(college)

		agg, ok := bySlug[slug]
		if !ok {
			conf := b.tables.Conference(college)
			agg = &model.CollegeAggregate{
				College:    college,
				Slug:       slug,
				Conference: conf,
				Group:      b.tables.Group(college),
				Players:    []model.PlayerSummary{},
			}
			bySlug[slug] = agg
		}
		agg.Players = append(agg.Players, summarize(p))
	}

	out := make([]model.CollegeAggregate, 0, len(bySlug))
	for _, agg := range bySlug {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func summarize(p *model.Player) model.PlayerSummary {
	s := model.PlayerSummary{
		ID:       p.ID,
		Name:     orDefault(p.Name, DefaultPlayerName),
		Position: orDefault(p.Position, DefaultPosition),
		NFLTeam:  orDefault(p.NFLTeam, DefaultNFLTeam),
	}
	if last, ok := p.LastGame(); ok {
		s.LastGame = &last
	}
	return s
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// FileName is the aggregate document name for slug.
func FileName(slug string) string {
	return filePrefix + strings.ToUpper(slug) + fileSuffix
}

// IsFileName reports whether name looks like an aggregate document.
func IsFileName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}

// PlayersByCollege maps each slug to its player ids, sorted.
func PlayersByCollege(aggs []model.CollegeAggregate) map[string][]string {
	idx := make(map[string][]string, len(aggs))
	for _, agg := range aggs {
		ids := make([]string, 0, len(agg.Players))
		for _, p := range agg.Players {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)
		idx[agg.Slug] = ids
	}
	return idx
}

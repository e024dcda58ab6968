// Package summary derives the home page document from college aggregates.
package summary

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tables"
)

// DefaultTopSchools is the default length of topSchoolsThisWeek.
const DefaultTopSchools = 10

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithTopSchoolsLimit sets how many schools topSchoolsThisWeek keeps.
func WithTopSchoolsLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.topN = n
		}
	}
}

// Builder builds HomeSummary documents.
type Builder struct {
	tables *tables.Classification
	topN   int
}

// NewBuilder returns a Builder. A nil table set means tables.New().
func NewBuilder(t *tables.Classification, opts ...Option) *Builder {
	if t == nil {
		t = tables.New()
	}
	b := &Builder{tables: t, topN: DefaultTopSchools}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build derives the summary. now stamps week and lastUpdated.
func (b *Builder) Build(aggs []model.CollegeAggregate, now time.Time) model.HomeSummary {
	now = now.UTC()
	return model.HomeSummary{
		Week:               WeekLabel(now),
		LastUpdated:        now.Format(time.RFC3339),
		ConferenceGroups:   b.conferenceGroups(aggs),
		TopSchoolsThisWeek: b.topSchools(aggs),
		PositionLeaders:    b.positionLeaders(aggs),
	}
}

// WeekLabel renders YYYY-Mmm-Ww where w is the week of the month.
func WeekLabel(t time.Time) string {
	return fmt.Sprintf("%d-M%02d-W%d", t.Year(), int(t.Month()), (t.Day()-1)/7+1)
}

func displayName(agg model.CollegeAggregate) string {
	if agg.College != "" {
		return agg.College
	}
	return agg.Slug
}

// byCountThenName orders by player count desc, then college name, then slug.
func byCountThenName(rows []model.CollegeCount) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.PlayerCount != b.PlayerCount {
			return a.PlayerCount > b.PlayerCount
		}
		if a.College != b.College {
			return a.College < b.College
		}
		return a.Slug < b.Slug
	})
}

func (b *Builder) conferenceGroups(aggs []model.CollegeAggregate) model.ConferenceGroups {
	groups := make(map[string][]model.CollegeCount)
	for _, agg := range aggs {
		key := agg.Group
		if key == "" {
			key = agg.Conference
		}
		if key == "" {
			key = tables.FallbackConference
		}
		groups[key] = append(groups[key], model.CollegeCount{
			College:     displayName(agg),
			Slug:        agg.Slug,
			PlayerCount: len(agg.Players),
		})
	}
	for _, rows := range groups {
		byCountThenName(rows)
	}

	out := make(model.ConferenceGroups, 0, len(groups))
	for _, key := range b.tables.GroupPriority() {
		if rows, ok := groups[key]; ok {
			out = append(out, model.ConferenceGroup{Name: key, Colleges: rows})
			delete(groups, key)
		}
	}
	rest := make([]string, 0, len(groups))
	for key := range groups {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		out = append(out, model.ConferenceGroup{Name: key, Colleges: groups[key]})
	}
	return out
}

func (b *Builder) topSchools(aggs []model.CollegeAggregate) []model.SchoolScore {
	type scored struct {
		row   model.SchoolScore
		total float64
	}
	all := make([]scored, 0, len(aggs))
	for _, agg := range aggs {
		row := model.SchoolScore{College: displayName(agg), Slug: agg.Slug}
		total := 0.0
		latest := ""
		for _, p := range agg.Players {
			if p.LastGame == nil {
				continue
			}
			if s := p.LastGame.ProductionScore; !math.IsNaN(s) && !math.IsInf(s, 0) {
				total += s
			}
			if p.LastGame.Date > latest {
				latest = p.LastGame.Date
			}
		}
		row.ProductionScore = math.Round(total*100) / 100
		if latest != "" {
			row.LatestGameDate = &latest
		}
		all = append(all, scored{row: row, total: total})
	}

	// Rank on the unrounded total; only the emitted score is rounded.
	sort.SliceStable(all, func(i, j int) bool {
		a, c := all[i], all[j]
		if a.total != c.total {
			return a.total > c.total
		}
		if a.row.College != c.row.College {
			return a.row.College < c.row.College
		}
		return a.row.Slug < c.row.Slug
	})
	if len(all) > b.topN {
		all = all[:b.topN]
	}
	rows := make([]model.SchoolScore, 0, len(all))
	for _, s := range all {
		rows = append(rows, s.row)
	}
	return rows
}

func (b *Builder) positionLeaders(aggs []model.CollegeAggregate) model.PositionLeaders {
	// group -> slug -> row
	counts := make(map[string]map[string]*model.PositionCount)
	for _, agg := range aggs {
		for _, p := range agg.Players {
			group := b.tables.PositionGroup(p.Position)
			bySlug, ok := counts[group]
			if !ok {
				bySlug = make(map[string]*model.PositionCount)
				counts[group] = bySlug
			}
			row, ok := bySlug[agg.Slug]
			if !ok {
				row = &model.PositionCount{College: displayName(agg), Slug: agg.Slug}
				bySlug[agg.Slug] = row
			}
			row.Count++
		}
	}

	out := make(model.PositionLeaders, 0, len(counts))
	for _, group := range tables.PositionGroups() {
		bySlug, ok := counts[group]
		if !ok {
			continue
		}
		rows := make([]model.PositionCount, 0, len(bySlug))
		for _, row := range bySlug {
			rows = append(rows, *row)
		}
		sort.Slice(rows, func(i, j int) bool {
			a, c := rows[i], rows[j]
			if a.Count != c.Count {
				return a.Count > c.Count
			}
			if a.College != c.College {
				return a.College < c.College
			}
			return a.Slug < c.Slug
		})
		out = append(out, model.PositionLeader{Group: group, Colleges: rows})
	}
	return out
}

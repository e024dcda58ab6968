package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gridiron/internal/adapters/roster"
	"github.com/okian/gridiron/internal/domain/aggregate"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Rebuild regenerates aggregates, the home summary and the indices from the
// stored players without fetching anything.
func (s *Service) Rebuild(ctx context.Context) ([]model.CollegeAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	return s.derive(ctx, s.logger, r)
}

// derive runs the full-scan stages. Aggregates cover every roster entry,
// using its stored document for game logs when one exists.
func (s *Service) derive(ctx context.Context, log logger.Logger, r *roster.Roster) ([]model.CollegeAggregate, error) {
	start := time.Now()
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	byID := make(map[string]model.Player, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}

	players := make([]model.Player, 0, r.Len())
	for _, e := range r.Entries() {
		p := s.baseline(e)
		if doc, ok := byID[e.ID]; ok {
			p.LastGameID = doc.LastGameID
			p.GameLogs = doc.GameLogs
		}
		players = append(players, p)
	}

	aggs := s.aggregates.Build(players)
	if err := s.store.WriteAggregates(ctx, aggs); err != nil {
		return nil, fmt.Errorf("write aggregates: %w", err)
	}
	_ = metrics.RecordStageDuration(metrics.StageAggregate, time.Since(start))
	log.Info(ctx, "aggregates rebuilt",
		logger.Int("colleges", len(aggs)),
		logger.Int("players", len(players)),
		logger.Int("documents", len(stored)))

	start = time.Now()
	home := s.summaries.Build(aggs, s.now())
	if err := s.store.WriteHomeSummary(ctx, home); err != nil {
		return nil, fmt.Errorf("write home summary: %w", err)
	}
	_ = metrics.RecordStageDuration(metrics.StageSummary, time.Since(start))

	start = time.Now()
	if err := s.store.WritePlayersByCollege(ctx, aggregate.PlayersByCollege(aggs)); err != nil {
		return nil, fmt.Errorf("write indices: %w", err)
	}
	_ = metrics.RecordStageDuration(metrics.StageIndices, time.Since(start))

	log.Info(ctx, "home summary rebuilt",
		logger.String("week", home.Week),
		logger.Int("conferenceGroups", len(home.ConferenceGroups)),
		logger.Int("topSchools", len(home.TopSchoolsThisWeek)))
	return aggs, nil
}

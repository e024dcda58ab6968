package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/adapters/mq/queue"
	"github.com/okian/gridiron/internal/adapters/mq/worker"
	"github.com/okian/gridiron/internal/adapters/provider"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/adapters/roster"
	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// runState accumulates the counters reported in meta.json.
type runState struct {
	report  model.RunReport
	updated map[string]struct{}
}

// Run processes gameIDs and rebuilds every derived document. A failure for
// one game or one player is logged and skipped. A missing roster or a failed
// derived-document write aborts the run.
func (s *Service) Run(ctx context.Context, gameIDs []string) (model.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &runState{
		report: model.RunReport{
			RunID:     uuid.NewString(),
			StartedAt: s.now().UTC(),
		},
		updated: make(map[string]struct{}),
	}
	log := s.logger.With(logger.String("runId", st.report.RunID))

	r, err := s.loadRoster(ctx)
	if err != nil {
		log.Error(ctx, "roster unavailable", logger.Error(err))
		return st.report, err
	}

	ids, dupes := dedupe.Unique(ctx, dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(gameIDs))), gameIDs)
	for i := 0; i < dupes; i++ {
		metrics.RecordGameDuplicate()
	}
	st.report.GamesRequested = len(ids)
	log.Info(ctx, "run started",
		logger.Int("games", len(ids)),
		logger.Int("duplicates", dupes),
		logger.Int("roster", r.Len()))

	if len(ids) > 0 {
		if s.client == nil {
			return st.report, errors.New("run: no provider client configured")
		}
		s.fetchAndMerge(ctx, log, r, ids, st)
	}
	if err := ctx.Err(); err != nil {
		return st.report, err
	}

	aggs, err := s.derive(ctx, log, r)
	if err != nil {
		return st.report, err
	}

	st.report.PlayersUpdated = len(st.updated)
	st.report.Aggregates = len(aggs)
	st.report.FinishedAt = s.now().UTC()
	if err := s.store.WriteRunReport(ctx, st.report); err != nil {
		return st.report, fmt.Errorf("write run report: %w", err)
	}
	metrics.RecordRunCompleted(st.report.FinishedAt)

	log.Info(ctx, "run finished",
		logger.Int("gamesProcessed", st.report.GamesProcessed),
		logger.Int("gamesFailed", st.report.GamesFailed),
		logger.Int("playersUpdated", st.report.PlayersUpdated),
		logger.Int("warnings", st.report.Warnings),
		logger.Duration("elapsed", st.report.FinishedAt.Sub(st.report.StartedAt)))
	return st.report, nil
}

// fetchAndMerge fetches games through the worker pool and merges them one at
// a time in input order.
func (s *Service) fetchAndMerge(ctx context.Context, log logger.Logger, r *roster.Roster, ids []string, st *runState) {
	start := time.Now()

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(ids)))
	for i, id := range ids {
		if err := q.Enqueue(ctx, queue.Job{Seq: i, GameID: id}); err != nil {
			log.Error(ctx, "enqueue failed", logger.String("gameId", id), logger.Error(err))
		}
	}
	_ = q.Close()

	pool := worker.NewPool(s.concurrency, q, s.client, worker.WithPoolLogger(log))
	pool.Start(ctx)

	pending := make(map[int]worker.Result)
	next := 0
	var mergeTime time.Duration
	results := pool.Results()
merge:
	for {
		select {
		case res, ok := <-results:
			if !ok {
				break merge
			}
			pending[res.Job.Seq] = res
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				t := time.Now()
				s.processGame(ctx, log, r, ready, st)
				mergeTime += time.Since(t)
			}
		case <-ctx.Done():
			if err := pool.Shutdown(context.WithoutCancel(ctx)); err != nil {
				log.Warn(ctx, "fetch pool did not stop", logger.Error(err))
			}
			for res := range results {
				pending[res.Job.Seq] = res
			}
			break merge
		}
	}
	// Results stranded behind a job that never completed, e.g. on cancel.
	rest := make([]int, 0, len(pending))
	for seq := range pending {
		rest = append(rest, seq)
	}
	sort.Ints(rest)
	for _, seq := range rest {
		s.processGame(ctx, log, r, pending[seq], st)
	}

	_ = metrics.RecordStageDuration(metrics.StageFetch, time.Since(start)-mergeTime)
	_ = metrics.RecordStageDuration(metrics.StageMerge, mergeTime)
}

func (s *Service) processGame(ctx context.Context, log logger.Logger, r *roster.Roster, res worker.Result, st *runState) {
	gameID := res.Job.GameID
	if res.Err != nil {
		s.gameFailed(ctx, log, gameID, res.Err, st)
		return
	}
	metrics.RecordGameFetched()

	meta, err := boxscore.ExtractGameMeta(res.Payload.Header)
	if err != nil {
		s.gameFailed(ctx, log, gameID, err, st)
		return
	}
	if meta.GameID != gameID {
		log.Warn(ctx, "provider returned a different game id",
			logger.String("requested", gameID), logger.String("got", meta.GameID))
	}
	stats := boxscore.Normalize(res.Payload.Boxscore.Players)

	merged := 0
	for _, e := range r.Entries() {
		if ctx.Err() != nil {
			return
		}
		teamAbbr := e.NFLTeamAbbr
		var bundle *model.StatBundle
		if ps, ok := stats[e.ID]; ok {
			teamAbbr = ps.TeamAbbr
			b := ps.Stats
			bundle = &b
		} else if _, ok := meta.Teams[teamAbbr]; !ok {
			continue
		}

		up, err := s.store.UpsertGame(ctx, e.ID, s.baseline(e), meta, teamAbbr, bundle)
		switch {
		case err == nil:
			merged++
			st.updated[e.ID] = struct{}{}
			if up.RecoveredCorrupt {
				st.report.Warnings++
			}
		case repository.IsWarning(err):
			st.report.Warnings++
		default:
			st.report.Warnings++
			log.Error(ctx, "merge failed",
				logger.String("gameId", meta.GameID),
				logger.String("playerId", e.ID),
				logger.Error(err))
		}
	}

	st.report.GamesProcessed++
	log.Info(ctx, "game merged",
		logger.String("gameId", meta.GameID),
		logger.String("date", meta.Date),
		logger.String("status", string(meta.Status)),
		logger.Int("athletes", len(stats)),
		logger.Int("players", merged))
}

func (s *Service) gameFailed(ctx context.Context, log logger.Logger, gameID string, err error, st *runState) {
	st.report.GamesFailed++
	metrics.RecordGameFailed(failureReason(err))
	log.Error(ctx, "game skipped", logger.String("gameId", gameID), logger.Error(err))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, provider.ErrTransport):
		return "transport"
	case errors.Is(err, provider.ErrStatus):
		return "status"
	case errors.Is(err, provider.ErrDecode):
		return "decode"
	case errors.Is(err, provider.ErrUnexpectedShape):
		return "shape"
	case errors.Is(err, boxscore.ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

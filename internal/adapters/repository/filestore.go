package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/scoring"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Layout of the data directory.
const (
	PlayersDir           = "players"
	AggregatesDir        = "aggregates"
	IndicesDir           = "indices"
	HomeSummaryFile      = "homeSummary.json"
	PlayersByCollegeFile = "playersByCollege.json"
	MetaFile             = "meta.json"
)

// Merge warning kinds reported to metrics.
const (
	warnTeamNotInGame = "team_not_in_game"
	warnCorrupt       = "corrupt_document"
)

// FileStore keeps one JSON document per player plus the derived documents,
// all under a single data directory. Writes are atomic per document.
type FileStore struct {
	mu     sync.Mutex
	root   string
	scorer scoring.Scorer
	log    logger.Logger
	now    func() time.Time
}

// NewFileStore creates the directory layout under root.
func NewFileStore(root string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		root:   root,
		scorer: scoring.NewWeightedScorer(),
		log:    logger.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, dir := range []string{PlayersDir, AggregatesDir, IndicesDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", dir, err)
		}
	}
	return s, nil
}

// Root returns the data directory.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) playerPath(id string) string {
	return filepath.Join(s.root, PlayersDir, id+docExt)
}

// UpsertGame implements PlayerStore.
func (s *FileStore) UpsertGame(
	ctx context.Context,
	playerID string,
	baseline model.Player,
	meta model.GameMeta,
	teamAbbr string,
	stats *model.StatBundle,
) (UpsertResult, error) {
	if err := ctx.Err(); err != nil {
		return UpsertResult{}, err
	}
	if err := validID(playerID); err != nil {
		return UpsertResult{}, err
	}
	if strings.TrimSpace(meta.GameID) == "" {
		return UpsertResult{}, fmt.Errorf("%w: empty game id", ErrInvalidID)
	}

	team, ok := meta.Teams[teamAbbr]
	if !ok || teamAbbr == "" {
		metrics.RecordMergeWarning(warnTeamNotInGame)
		s.log.Warn(ctx, "team not in game",
			logger.String("playerId", playerID),
			logger.String("teamAbbr", teamAbbr),
			logger.String("gameId", meta.GameID))
		return UpsertResult{}, warning{fmt.Errorf("%w: player %s team %q game %s",
			ErrTeamNotInGame, playerID, teamAbbr, meta.GameID)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res UpsertResult
	path := s.playerPath(playerID)

	var doc model.Player
	err := readJSON(path, &doc)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		doc = fresh(baseline, playerID)
		res.Created = true
	case errors.Is(err, ErrCorruptDocument):
		if qerr := s.quarantine(ctx, path, err); qerr != nil {
			return res, qerr
		}
		doc = fresh(baseline, playerID)
		res.Created = true
		res.RecoveredCorrupt = true
	default:
		return res, err
	}
	fillIdentity(&doc, baseline, playerID)

	var bundle model.StatBundle
	if stats != nil {
		bundle = *stats
	}
	entry := model.GameLog{
		GameID:        meta.GameID,
		Date:          meta.Date,
		TeamAbbr:      team.TeamAbbr,
		OpponentAbbr:  team.OpponentAbbr,
		OpponentName:  team.OpponentName,
		IsHome:        team.IsHome,
		TeamScore:     team.TeamScore,
		OpponentScore: team.OpponentScore,
		Status:        meta.Status,
		ClockText:     meta.ClockText,
		ResultText:    team.ResultText(),
		PlayerStats:   bundle,
	}
	entry.ProductionScore = s.scorer.Score(bundle)
	doc.GameLogs.Set(entry)

	prev := ""
	if doc.LastGameID != nil {
		prev = *doc.LastGameID
	}
	if takesLastGame(&doc, meta) {
		id := meta.GameID
		doc.LastGameID = &id
	}
	res.LastGameChanged = doc.LastGameID != nil && *doc.LastGameID != prev

	if err := writeJSONAtomic(path, doc); err != nil {
		return res, fmt.Errorf("write player %s: %w", playerID, err)
	}
	metrics.RecordPlayerMerge()
	res.ProductionScore = entry.ProductionScore
	return res, nil
}

// takesLastGame reports whether meta should become the last game. The current
// pointer survives only when it names a game with a strictly later date.
func takesLastGame(doc *model.Player, meta model.GameMeta) bool {
	current, ok := doc.LastGame()
	if !ok || current.GameID == meta.GameID {
		return true
	}
	if current.Date == "" || meta.Date == "" {
		return true
	}
	return current.Date <= meta.Date
}

func fresh(baseline model.Player, id string) model.Player {
	doc := baseline
	doc.ID = id
	doc.LastGameID = nil
	doc.GameLogs = model.GameLogs{}
	return doc
}

// fillIdentity copies identity fields the stored document lacks.
func fillIdentity(doc *model.Player, baseline model.Player, id string) {
	if doc.ID == "" {
		doc.ID = id
	}
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&doc.Name, baseline.Name)
	fill(&doc.College, baseline.College)
	fill(&doc.CollegeSlug, baseline.CollegeSlug)
	fill(&doc.Position, baseline.Position)
	fill(&doc.NFLTeam, baseline.NFLTeam)
	fill(&doc.TeamAbbr, baseline.TeamAbbr)
}

func (s *FileStore) quarantine(ctx context.Context, path string, cause error) error {
	aside := fmt.Sprintf("%s%s%d-%s", path, quarantineMark, s.now().UnixNano(), uuid.NewString()[:8])
	if err := renameFile(path, aside); err != nil {
		return fmt.Errorf("quarantine %s: %w", filepath.Base(path), err)
	}
	metrics.RecordCorruptDocument()
	metrics.RecordMergeWarning(warnCorrupt)
	s.log.Warn(ctx, "corrupt document quarantined",
		logger.String("path", path),
		logger.String("movedTo", filepath.Base(aside)),
		logger.Error(cause))
	return nil
}

// Seed writes baseline as a new record unless one already exists.
// It reports whether a document was created.
func (s *FileStore) Seed(ctx context.Context, baseline model.Player) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validID(baseline.ID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.playerPath(baseline.ID)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat player %s: %w", baseline.ID, err)
	}
	if err := writeJSONAtomic(path, fresh(baseline, baseline.ID)); err != nil {
		return false, fmt.Errorf("write player %s: %w", baseline.ID, err)
	}
	return true, nil
}

// Get implements PlayerStore.
func (s *FileStore) Get(ctx context.Context, playerID string) (model.Player, error) {
	if err := ctx.Err(); err != nil {
		return model.Player{}, err
	}
	if err := validID(playerID); err != nil {
		return model.Player{}, err
	}
	var p model.Player
	if err := readJSON(s.playerPath(playerID), &p); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// List implements PlayerStore. Unreadable documents are logged and skipped.
func (s *FileStore) List(ctx context.Context) ([]model.Player, error) {
	dir := filepath.Join(s.root, PlayersDir)
	names, err := docNames(dir)
	if err != nil {
		return nil, err
	}

	out := make([]model.Player, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var p model.Player
		if err := readJSON(filepath.Join(dir, name), &p); err != nil {
			s.log.Warn(ctx, "skipping unreadable player document",
				logger.String("file", name), logger.Error(err))
			continue
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(name, docExt)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	metrics.UpdatePlayersTotal(len(out))
	return out, nil
}

// Count implements PlayerStore.
func (s *FileStore) Count(_ context.Context) int {
	names, err := docNames(filepath.Join(s.root, PlayersDir))
	if err != nil {
		return 0
	}
	return len(names)
}

var (
	_ PlayerStore   = (*FileStore)(nil)
	_ DocumentStore = (*FileStore)(nil)
)

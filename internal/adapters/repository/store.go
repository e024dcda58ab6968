// Package repository persists player records and derived documents.
package repository

import (
	"context"

	"github.com/okian/gridiron/internal/domain/model"
)

// UpsertResult describes the outcome of one merge.
type UpsertResult struct {
	Created          bool
	RecoveredCorrupt bool
	LastGameChanged  bool
	ProductionScore  float64
}

// PlayerStore provides read/write access to player records.
type PlayerStore interface {
	// UpsertGame merges one game into a player's record. A nil stats bundle
	// records the game with every stat group null.
	// Returns an error satisfying IsWarning when the team is not in the game.
	UpsertGame(ctx context.Context, playerID string, baseline model.Player, meta model.GameMeta, teamAbbr string, stats *model.StatBundle) (UpsertResult, error)

	// Get returns a player record.
	// Returns ErrNotFound if the player has no record.
	Get(ctx context.Context, playerID string) (model.Player, error)

	// List returns every readable player record sorted by id.
	List(ctx context.Context) ([]model.Player, error)

	// Count returns the number of player records on disk.
	Count(ctx context.Context) int
}

// DocumentStore persists the derived read documents.
type DocumentStore interface {
	WriteAggregates(ctx context.Context, aggs []model.CollegeAggregate) error
	ReadAggregate(ctx context.Context, slug string) (model.CollegeAggregate, error)
	ListAggregates(ctx context.Context) ([]model.CollegeAggregate, error)

	WriteHomeSummary(ctx context.Context, s model.HomeSummary) error
	ReadHomeSummary(ctx context.Context) (model.HomeSummary, error)

	WritePlayersByCollege(ctx context.Context, idx map[string][]string) error
	ReadPlayersByCollege(ctx context.Context) (map[string][]string, error)

	WriteRunReport(ctx context.Context, r model.RunReport) error
	ReadRunReport(ctx context.Context) (model.RunReport, error)
}

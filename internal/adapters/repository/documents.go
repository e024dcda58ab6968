package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/gridiron/internal/domain/aggregate"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// WriteAggregates replaces the aggregate set. Aggregate documents whose slug
// is no longer present are removed.
func (s *FileStore) WriteAggregates(ctx context.Context, aggs []model.CollegeAggregate) error {
	dir := filepath.Join(s.root, AggregatesDir)
	keep := make(map[string]struct{}, len(aggs))

	for i := range aggs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := validID(aggs[i].Slug); err != nil {
			return err
		}
		name := aggregate.FileName(aggs[i].Slug)
		if err := writeJSONAtomic(filepath.Join(dir, name), aggs[i]); err != nil {
			return fmt.Errorf("write aggregate %s: %w", aggs[i].Slug, err)
		}
		keep[name] = struct{}{}
	}

	names, err := docNames(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := keep[name]; ok || !aggregate.IsFileName(name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale aggregate %s: %w", name, err)
		}
		s.log.Debug(ctx, "removed stale aggregate", logger.String("file", name))
	}
	metrics.UpdateAggregatesTotal(len(aggs))
	return nil
}

// ReadAggregate returns the aggregate for slug. Slugs are case-insensitive.
func (s *FileStore) ReadAggregate(ctx context.Context, slug string) (model.CollegeAggregate, error) {
	if err := ctx.Err(); err != nil {
		return model.CollegeAggregate{}, err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := validID(slug); err != nil {
		return model.CollegeAggregate{}, err
	}
	var agg model.CollegeAggregate
	if err := readJSON(filepath.Join(s.root, AggregatesDir, aggregate.FileName(slug)), &agg); err != nil {
		return model.CollegeAggregate{}, err
	}
	return agg, nil
}

// ListAggregates returns every readable aggregate in file name order.
func (s *FileStore) ListAggregates(ctx context.Context) ([]model.CollegeAggregate, error) {
	dir := filepath.Join(s.root, AggregatesDir)
	names, err := docNames(dir)
	if err != nil {
		return nil, err
	}
	out := make([]model.CollegeAggregate, 0, len(names))
	for _, name := range names {
		if !aggregate.IsFileName(name) {
			continue
		}
		var agg model.CollegeAggregate
		if err := readJSON(filepath.Join(dir, name), &agg); err != nil {
			s.log.Warn(ctx, "skipping unreadable aggregate", logger.String("file", name), logger.Error(err))
			continue
		}
		out = append(out, agg)
	}
	return out, nil
}

func (s *FileStore) WriteHomeSummary(_ context.Context, sum model.HomeSummary) error {
	return writeJSONAtomic(filepath.Join(s.root, HomeSummaryFile), sum)
}

func (s *FileStore) ReadHomeSummary(_ context.Context) (model.HomeSummary, error) {
	var sum model.HomeSummary
	err := readJSON(filepath.Join(s.root, HomeSummaryFile), &sum)
	return sum, err
}

func (s *FileStore) WritePlayersByCollege(_ context.Context, idx map[string][]string) error {
	if idx == nil {
		idx = map[string][]string{}
	}
	return writeJSONAtomic(filepath.Join(s.root, IndicesDir, PlayersByCollegeFile), idx)
}

func (s *FileStore) ReadPlayersByCollege(_ context.Context) (map[string][]string, error) {
	var idx map[string][]string
	if err := readJSON(filepath.Join(s.root, IndicesDir, PlayersByCollegeFile), &idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// WriteRunReport writes meta.json.
func (s *FileStore) WriteRunReport(_ context.Context, r model.RunReport) error {
	return writeJSONAtomic(filepath.Join(s.root, MetaFile), r)
}

// ReadRunReport reads meta.json.
func (s *FileStore) ReadRunReport(_ context.Context) (model.RunReport, error) {
	var r model.RunReport
	err := readJSON(filepath.Join(s.root, MetaFile), &r)
	return r, err
}

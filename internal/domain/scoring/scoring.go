// Package scoring computes a player's production score for one game from
// their StatBundle and a table of per-stat weights.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
)

// Weight keys.
const (
	PassingYards           = "passingYards"
	PassingTouchdowns      = "passingTouchdowns"
	PassingInterceptions   = "passingInterceptions"
	RushingYards           = "rushingYards"
	RushingTouchdowns      = "rushingTouchdowns"
	Receptions             = "receptions"
	ReceivingYards         = "receivingYards"
	ReceivingTouchdowns    = "receivingTouchdowns"
	Tackles                = "tackles"
	Sacks                  = "sacks"
	DefensiveInterceptions = "defensiveInterceptions"
	FieldGoalsMade         = "fieldGoalsMade"
	ExtraPointsMade        = "extraPointsMade"
	ReturnYards            = "returnYards"
	ReturnTouchdowns       = "returnTouchdowns"
)

// ErrUnknownWeight is returned for a weight key no stat maps to.
var ErrUnknownWeight = errors.New("scoring: unknown weight")

// DefaultWeights returns the fantasy-style defaults.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		PassingYards:           0.04,
		PassingTouchdowns:      4,
		PassingInterceptions:   -2,
		RushingYards:           0.1,
		RushingTouchdowns:      6,
		Receptions:             1,
		ReceivingYards:         0.1,
		ReceivingTouchdowns:    6,
		Tackles:                1,
		Sacks:                  2,
		DefensiveInterceptions: 3,
		FieldGoalsMade:         3,
		ExtraPointsMade:        1,
		ReturnYards:            0.04,
		ReturnTouchdowns:       6,
	}
}

// ValidateWeights reports keys that do not name a stat.
func ValidateWeights(weights map[string]float64) error {
	known := DefaultWeights()
	var unknown []string
	for k := range weights {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %v", ErrUnknownWeight, unknown)
	}
	return nil
}

// Scorer computes a production score from one game's stats.
type Scorer interface {
	Score(stats model.StatBundle) float64
}

// Option applies a configuration option to the WeightedScorer.
type Option func(*WeightedScorer)

// WithWeightsFromConfig overrides individual default weights. Unknown keys
// are ignored; validate them with ValidateWeights first.
func WithWeightsFromConfig(weights map[string]float64) Option {
	return func(s *WeightedScorer) {
		for k, w := range weights {
			if _, ok := s.weights[k]; ok {
				s.weights[k] = w
			}
		}
	}
}

// WeightedScorer implements Scorer as a weighted sum over stat fields.
type WeightedScorer struct {
	weights map[string]float64
}

// NewWeightedScorer creates a scorer with default weights and opts applied.
func NewWeightedScorer(opts ...Option) *WeightedScorer {
	s := &WeightedScorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weight returns the weight in effect for key.
func (s *WeightedScorer) Weight(key string) float64 {
	return s.weights[key]
}

// Score sums weight * value over every present group. A bundle with only nil
// groups scores 0. The result is rounded to two decimals.
func (s *WeightedScorer) Score(b model.StatBundle) float64 {
	w := s.weights
	total := 0.0

	if p := b.Passing; p != nil {
		total += float64(p.Yards)*w[PassingYards] +
			float64(p.Touchdowns)*w[PassingTouchdowns] +
			float64(p.Interceptions)*w[PassingInterceptions]
	}
	if r := b.Rushing; r != nil {
		total += float64(r.Yards)*w[RushingYards] +
			float64(r.Touchdowns)*w[RushingTouchdowns]
	}
	if r := b.Receiving; r != nil {
		total += float64(r.Receptions)*w[Receptions] +
			float64(r.Yards)*w[ReceivingYards] +
			float64(r.Touchdowns)*w[ReceivingTouchdowns]
	}
	if d := b.Defense; d != nil {
		total += float64(d.Tackles)*w[Tackles] +
			d.Sacks*w[Sacks] +
			float64(d.Interceptions)*w[DefensiveInterceptions]
	}
	if k := b.Kicking; k != nil {
		total += float64(k.FieldGoalsMade)*w[FieldGoalsMade] +
			float64(k.ExtraPointsMade)*w[ExtraPointsMade]
	}
	if r := b.Returns; r != nil {
		total += float64(r.Yards)*w[ReturnYards] +
			float64(r.Touchdowns)*w[ReturnTouchdowns]
	}

	return math.Round(total*100) / 100
}

package repository

import (
	"time"

	"github.com/okian/gridiron/internal/domain/scoring"
	"github.com/okian/gridiron/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithScorer sets the scorer used to compute productionScore at merge time.
func WithScorer(s scoring.Scorer) Option {
	return func(fs *FileStore) {
		if s != nil {
			fs.scorer = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(fs *FileStore) {
		if l != nil {
			fs.log = l
		}
	}
}

// WithClock sets the time source used for quarantine suffixes.
func WithClock(now func() time.Time) Option {
	return func(fs *FileStore) {
		if now != nil {
			fs.now = now
		}
	}
}

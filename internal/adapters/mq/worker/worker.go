// Package worker runs bounded concurrent game fetches.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/gridiron/internal/adapters/mq/queue"
	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

const (
	defaultWorkerCount  = 5
	poolShutdownTimeout = 30 * time.Second
)

// Fetcher retrieves one game's box score.
type Fetcher interface {
	FetchGame(ctx context.Context, gameID string) (*boxscore.Payload, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Result is the outcome of one fetch. Exactly one of Payload and Err is set.
type Result struct {
	Job     queue.Job
	Payload *boxscore.Payload
	Err     error
	Latency time.Duration
}

// Worker processes jobs until the queue is drained or it is stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in flight.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for fetch jobs.
type InMemoryWorker struct {
	queue   Queue
	fetcher Fetcher
	results chan<- Result
	name    string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker that publishes to results.
func NewInMemoryWorker(q Queue, f Fetcher, results chan<- Result, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		fetcher:  f,
		results:  results,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run implements Worker.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			res := w.process(ctx, job)
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			case <-w.shutdown:
				return
			}
		}
	}
}

// Shutdown implements Worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) Result {
	start := time.Now()
	payload, err := w.fetcher.FetchGame(ctx, job.GameID)
	latency := time.Since(start)
	metrics.RecordFetchLatency(float64(latency.Milliseconds()))

	if err == nil && payload == nil {
		err = fmt.Errorf("fetch %s: empty payload", job.GameID)
	}
	if err != nil {
		w.logger.Debug(ctx, "fetch failed",
			logger.String("gameId", job.GameID),
			logger.Duration("latency", latency),
			logger.Error(err))
		return Result{Job: job, Err: err, Latency: latency}
	}
	return Result{Job: job, Payload: payload, Latency: latency}
}

// Pool manages a fixed number of workers sharing one queue and one results
// channel. Results is closed once every worker has returned.
type Pool struct {
	workers []*InMemoryWorker
	results chan Result
	wg      sync.WaitGroup
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. Values below one mean the
// default of five.
func NewPool(workerCount int, q Queue, f Fetcher, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		results: make(chan Result, workerCount),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewInMemoryWorker(q, f, p.results,
			WithName("fetch-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Results returns the channel fetch results arrive on.
func (p *Pool) Results() <-chan Result { return p.results }

// Start starts all workers.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(len(p.workers))
	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	go func() {
		p.wg.Wait()
		metrics.UpdateWorkerCount(0)
		close(p.results)
	}()
}

// Shutdown stops every worker, waiting at most until ctx or the pool timeout
// expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

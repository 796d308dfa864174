// Package worker runs scheduled games off the job queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/gridiron/internal/adapters/mq/queue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Simulator plays one game.
type Simulator interface {
	Simulate(ctx context.Context, j queue.GameJob) (ruleset.GameResult, error)
}

// SimulatorFunc adapts a function to Simulator.
type SimulatorFunc func(ctx context.Context, j queue.GameJob) (ruleset.GameResult, error)

// Simulate calls f.
func (f SimulatorFunc) Simulate(ctx context.Context, j queue.GameJob) (ruleset.GameResult, error) {
	return f(ctx, j)
}

// Simulate is the default Simulator. A game is not interruptible once it
// starts; ctx is only checked before it.
func Simulate(ctx context.Context, j queue.GameJob) (ruleset.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return ruleset.GameResult{}, err
	}
	return ruleset.SimulateGame(j.Home, j.Away, j.Seed, j.Options...)
}

// Outcome is a finished job.
type Outcome struct {
	Job    queue.GameJob
	Result ruleset.GameResult
	Err    error
}

// Collector receives outcomes. It is called concurrently by every worker.
type Collector interface {
	Collect(ctx context.Context, o Outcome)
}

// CollectorFunc adapts a function to Collector.
type CollectorFunc func(ctx context.Context, o Outcome)

// Collect calls f.
func (f CollectorFunc) Collect(ctx context.Context, o Outcome) { f(ctx, o) }

// Source is where workers read jobs from.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.GameJob
}

type worker struct {
	name   string
	pool   *Pool
	done   chan struct{}
	logger logger.Logger
}

func (w *worker) run(ctx context.Context) {
	defer close(w.done)

	jobs := w.pool.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pool.shutdown:
			return
		case j, ok := <-jobs:
			if !ok || ctx.Err() != nil {
				return
			}
			w.pool.collector.Collect(ctx, w.process(ctx, j))
		}
	}
}

func (w *worker) process(ctx context.Context, j queue.GameJob) Outcome {
	start := time.Now()
	res, err := w.pool.sim.Simulate(ctx, j)
	if err != nil {
		kind := errorKind(err)
		metrics.RecordGameError(kind)
		metrics.RecordErrorByComponent("worker", kind)
		w.logger.Error(ctx, "game failed",
			logger.Int("index", j.Index),
			logger.String("home", j.Home.ID),
			logger.String("away", j.Away.ID),
			logger.Error(err),
		)
		return Outcome{Job: j, Err: fmt.Errorf("game %d (%s at %s): %w", j.Index, j.Away.ID, j.Home.ID, err)}
	}
	metrics.RecordGame(res.PlayCount, res.HomeScore+res.AwayScore, res.Overtime, float64(time.Since(start).Microseconds())/1000)
	return Outcome{Job: j, Result: res}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrConfiguration):
		return "configuration"
	case errors.Is(err, model.ErrInvariant):
		return "invariant"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "other"
	}
}

// Pool runs a fixed number of workers over one source.
type Pool struct {
	name      string
	workers   []*worker
	source    Source
	sim       Simulator
	collector Collector
	shutdown  chan struct{}
	logger    logger.Logger
}

// NewPool creates a pool. A count below 1 means one worker per CPU.
func NewPool(count int, source Source, collector Collector, opts ...Option) *Pool {
	if count < 1 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		name:      "worker",
		source:    source,
		sim:       SimulatorFunc(Simulate),
		collector: collector,
		shutdown:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker-pool")
	}
	p.workers = make([]*worker, count)
	for i := range p.workers {
		name := p.name + "-" + strconv.Itoa(i)
		p.workers[i] = &worker{name: name, pool: p, done: make(chan struct{}), logger: p.logger.Named(name)}
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker. Workers stop when the source is drained,
// ctx is done or the pool is shut down; a game in flight always finishes.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerActiveCount(len(p.workers))
	for _, w := range p.workers {
		go w.run(ctx)
	}
}

// Wait blocks until every worker has stopped.
func (p *Pool) Wait() {
	for _, w := range p.workers {
		<-w.done
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown closes the source if it can be closed, stops the workers and
// waits for them up to ctx or an internal timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}

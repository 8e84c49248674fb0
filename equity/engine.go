// Package equity computes the pot equity of two or more Texas Hold'em
// participants, each holding a weighted range of starting hands, by exact
// enumeration or Monte Carlo simulation.
//
// Work is split into a fixed list of chunks that depends only on the
// request, never on the number of workers. Each chunk fills its own tally
// and the tallies are summed in chunk order before a single division, so a
// parallel run returns exactly the same numbers as a sequential one.
package equity

import (
	"context"
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-equity/internal/randutil"
)

// Engine computes equity requests. It is safe for concurrent use.
type Engine struct {
	config Config
	logger zerolog.Logger
	clock  quartz.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the clock used to measure Result.Elapsed.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New creates an engine with the given configuration.
func New(config Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		config: config,
		logger: zerolog.Nop(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compute runs a request with a default engine.
func Compute(ctx context.Context, req Request) (*Result, error) {
	e, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, req)
}

// Compute validates the request, then enumerates or simulates it. Every
// validation error is reported before any work starts. A failure or
// cancellation in any chunk fails the whole request.
func (e *Engine) Compute(ctx context.Context, req Request) (*Result, error) {
	start := e.clock.Now()

	trials, workers, err := e.resolveBudget(req)
	if err != nil {
		return nil, err
	}
	snap, err := newSnapshot(req)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	completions := snap.completions()
	if mode == Auto {
		mode = MonteCarlo
		if completions < float64(e.config.ExactThreshold) {
			mode = Exact
		}
	}
	if mode == MonteCarlo && trials <= 0 {
		return nil, &ConfigError{Field: "trials", Reason: "simulation needs a positive trial budget"}
	}

	var (
		run    chunkRunner
		chunks []chunk
		seed   uint64
	)
	switch mode {
	case Exact:
		x, err := newExactRun(snap)
		if err != nil {
			return nil, err
		}
		run, chunks = x, x.plan()
	case MonteCarlo:
		seed = e.resolveSeed(req)
		sim, err := newSimulationRun(snap, seed)
		if err != nil {
			return nil, err
		}
		if sim.table != nil {
			e.logger.Debug().
				Int("assignments", sim.table.len()).
				Msg("Sampling from enumerated hand assignments")
		}
		run, chunks = sim, planSimulation(trials, seed)
	default:
		return nil, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown mode %s", mode)}
	}

	parallel := workers > 1 && len(chunks) > 1 && snap.multiCombo()
	if !parallel {
		workers = 1
	}

	e.logger.Debug().
		Str("mode", mode.String()).
		Int("participants", snap.participants()).
		Float64("completions", completions).
		Int("chunks", len(chunks)).
		Int("workers", workers).
		Msg("Computing equity")

	var tallies []tally
	if parallel {
		tallies, err = runParallel(ctx, run, chunks, snap.participants(), workers)
	} else {
		tallies, err = runSequential(ctx, run, chunks, snap.participants())
	}
	if err != nil {
		return nil, err
	}

	res := newResult(reduce(tallies, snap.participants()), mode)
	res.Chunks = len(chunks)
	res.Workers = workers
	if mode == MonteCarlo {
		res.Seed = seed
	}
	res.Elapsed = e.clock.Since(start)

	e.logger.Debug().
		Int64("branches", res.Branches).
		Dur("elapsed", res.Elapsed).
		Msg("Equity computed")
	return res, nil
}

// resolveBudget applies config fallbacks to the request trial count and
// worker pool size.
func (e *Engine) resolveBudget(req Request) (int, int, error) {
	if req.Trials < 0 {
		return 0, 0, &ConfigError{Field: "trials", Reason: fmt.Sprintf("trial budget must not be negative, got %d", req.Trials)}
	}
	if req.Workers < 0 {
		return 0, 0, &ConfigError{Field: "workers", Reason: fmt.Sprintf("worker pool size must not be negative, got %d", req.Workers)}
	}
	trials, workers := req.Trials, req.Workers
	if trials == 0 {
		trials = e.config.Trials
	}
	if workers == 0 {
		workers = e.config.Workers
	}
	if workers <= 0 {
		return 0, 0, &ConfigError{Field: "workers", Reason: "worker pool must have at least one worker"}
	}
	return trials, workers, nil
}

func (e *Engine) resolveSeed(req Request) uint64 {
	switch {
	case req.Seed != nil:
		return *req.Seed
	case e.config.Seed != nil:
		return *e.config.Seed
	}
	return randutil.Entropy()
}

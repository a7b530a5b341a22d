// Package batch plays many matches in parallel and forwards each result to the
// configured sinks.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hotmech/simulator/internal/catalog"
	"github.com/hotmech/simulator/internal/engine"
	"github.com/hotmech/simulator/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OutcomeError marks a match that could not be played to an outcome.
const OutcomeError = "error"

var (
	ErrNoCatalog = errors.New("batch has no catalog")
	ErrNoMatches = errors.New("batch has no matches to play")
)

// Sink receives every finished match. storage.Backend and influx.Manager satisfy it.
type Sink interface {
	RecordMatch(*core.MatchResult) error
}

// batchLifecycle is implemented by sinks that group matches under a batch record.
type batchLifecycle interface {
	StartBatch(*core.Batch) error
	EndBatch() error
}

// Dependencies holds the collaborators a Runner needs.
type Dependencies struct {
	Logger  *slog.Logger
	Catalog *catalog.Registry
	Sinks   []Sink
}

// Option configures a Runner.
type Option func(*settings)

type settings struct {
	workers     int
	seed        uint64
	maxTurns    int
	turnCardCap int
	tag         string
}

// Workers sets how many matches are played at once.
func Workers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// Seed sets the batch seed. Match i plays on the stream (seed, i).
func Seed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func MaxTurns(n int) Option {
	return func(s *settings) {
		s.maxTurns = n
	}
}

func TurnCardCap(n int) Option {
	return func(s *settings) {
		s.turnCardCap = n
	}
}

// Tag labels the batch in storage and exported file names.
func Tag(tag string) Option {
	return func(s *settings) {
		s.tag = tag
	}
}

// Plan is what a single Run plays.
type Plan struct {
	Matches int
	White   catalog.Choice
	Black   catalog.Choice
}

// Runner plays batches of matches.
type Runner struct {
	deps Dependencies
	cfg  settings

	// OTEL metrics
	completed metric.Int64Counter
	turns     metric.Int64Counter
	melt      metric.Int64Counter
	progress  metric.Float64ObservableGauge

	running  atomic.Pointer[string]
	planned  atomic.Int64
	finished atomic.Int64
}

// New creates a Runner. Metrics go to the global OTel meter (no-op if not configured).
func New(deps Dependencies, opts ...Option) (*Runner, error) {
	if deps.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	r := &Runner{
		deps: deps,
		cfg: settings{
			workers:     1,
			maxTurns:    engine.DefaultMaxTurns,
			turnCardCap: engine.DefaultTurnCardCap,
			tag:         "batch",
		},
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}

	m := meter()
	var err error

	r.completed, err = m.Int64Counter(
		"hotmech.matches.completed",
		metric.WithDescription("Matches played to an outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating completed counter: %w", err)
	}

	r.turns, err = m.Int64Counter(
		"hotmech.turns",
		metric.WithDescription("Turns played across all matches"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating turns counter: %w", err)
	}

	r.melt, err = m.Int64Counter(
		"hotmech.melt_damage",
		metric.WithDescription("Damage dealt by overheating"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating melt counter: %w", err)
	}

	r.progress, err = m.Float64ObservableGauge(
		"hotmech.batch.progress",
		metric.WithDescription("Fraction of the running batch that has finished"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating progress gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			id := r.running.Load()
			if planned := r.planned.Load(); id != nil && planned > 0 {
				o.ObserveFloat64(r.progress, float64(r.finished.Load())/float64(planned),
					metric.WithAttributes(attribute.String("batch", *id)))
			}
			return nil
		},
		r.progress,
	)
	if err != nil {
		return nil, fmt.Errorf("registering progress callback: %w", err)
	}

	return r, nil
}

// Run plays plan.Matches matches and returns the batch record and the results in
// index order. Cancelling ctx stops new matches from starting; the matches already
// finished are still returned, together with the context error.
func (r *Runner) Run(ctx context.Context, plan Plan) (*core.Batch, []core.MatchResult, error) {
	if plan.Matches <= 0 {
		return nil, nil, ErrNoMatches
	}
	// Reject unknown IDs before any worker starts.
	for _, c := range []catalog.Choice{plan.White, plan.Black} {
		if _, err := r.deps.Catalog.Resolve(c, engine.NewRand(r.cfg.seed, 0)); err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", c, err)
		}
	}

	b := &core.Batch{
		ID:          uuid.NewString(),
		Tag:         r.cfg.tag,
		Seed:        r.cfg.seed,
		Matches:     plan.Matches,
		Workers:     r.cfg.workers,
		MaxTurns:    r.cfg.maxTurns,
		TurnCardCap: r.cfg.turnCardCap,
		White:       plan.White.String(),
		Black:       plan.Black.String(),
		StartTime:   time.Now().UTC(),
	}
	logger := r.deps.Logger.With("batch", b.ID)

	for _, s := range r.deps.Sinks {
		if lc, ok := s.(batchLifecycle); ok {
			if err := lc.StartBatch(b); err != nil {
				return nil, nil, fmt.Errorf("starting batch: %w", err)
			}
		}
	}

	r.running.Store(&b.ID)
	r.planned.Store(int64(plan.Matches))
	r.finished.Store(0)
	logger.Info("Batch started", "matches", plan.Matches, "workers", r.cfg.workers,
		"seed", r.cfg.seed, "white", b.White, "black", b.Black)

	jobs := make(chan int)
	results := make(chan core.MatchResult, r.cfg.workers)

	go func() {
		defer close(jobs)
		for i := range plan.Matches {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range r.cfg.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- r.play(b.ID, i, plan, logger)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	played := make([]*core.MatchResult, plan.Matches)
	for res := range results {
		played[res.Index] = &res
		r.collect(ctx, &res, logger)
	}

	b.EndTime = time.Now().UTC()
	var errs []error
	for _, s := range r.deps.Sinks {
		if lc, ok := s.(batchLifecycle); ok {
			if err := lc.EndBatch(); err != nil {
				errs = append(errs, fmt.Errorf("ending batch: %w", err))
			}
		}
	}

	ordered := make([]core.MatchResult, 0, plan.Matches)
	for _, res := range played {
		if res != nil {
			ordered = append(ordered, *res)
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	logger.Info("Batch finished", "played", len(ordered), "duration", b.EndTime.Sub(b.StartTime))
	return b, ordered, errors.Join(errs...)
}

// collect updates the metrics and hands res to every sink. A failing sink is logged
// and does not stop the batch.
func (r *Runner) collect(ctx context.Context, res *core.MatchResult, logger *slog.Logger) {
	r.finished.Add(1)
	r.completed.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", res.Outcome)))
	r.turns.Add(ctx, int64(res.Turns))
	r.melt.Add(ctx, int64(res.MeltDamage))

	for _, s := range r.deps.Sinks {
		if err := s.RecordMatch(res); err != nil {
			logger.Warn("Failed to record match", "match", res.Index, "sink", fmt.Sprintf("%T", s), "error", err)
		}
	}
}

// play runs match i on its own random stream. An engine panic is reported as an
// error outcome rather than taking the batch down.
func (r *Runner) play(batchID string, i int, plan Plan, logger *slog.Logger) (res core.MatchResult) {
	start := time.Now()
	logger = logger.With("match", i)

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Match aborted", "panic", p)
			res = core.MatchResult{BatchID: batchID, Index: i, Outcome: OutcomeError, Error: fmt.Sprint(p)}
		}
		res.Duration = time.Since(start)
	}()

	rng := engine.NewRand(r.cfg.seed, uint64(i))
	white, err := r.deps.Catalog.Resolve(plan.White, rng)
	if err != nil {
		return core.MatchResult{BatchID: batchID, Index: i, Outcome: OutcomeError, Error: err.Error()}
	}
	black, err := r.deps.Catalog.Resolve(plan.Black, rng)
	if err != nil {
		return core.MatchResult{BatchID: batchID, Index: i, Outcome: OutcomeError, Error: err.Error()}
	}

	g, err := engine.NewGame(white, black,
		engine.WithRand(rng),
		engine.WithLogger(logger),
		engine.WithMaxTurns(r.cfg.maxTurns),
		engine.WithTurnCardCap(r.cfg.turnCardCap),
	)
	if err != nil {
		return core.MatchResult{BatchID: batchID, Index: i, Outcome: OutcomeError, Error: err.Error()}
	}

	g.Play()
	return resultOf(batchID, i, g)
}

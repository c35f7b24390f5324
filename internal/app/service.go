// Package app provides the assignment engine service: it sequences unit
// formation, BYE selection, pairing optimization, and resource assignment
// into complete rounds, and orchestrates the two-round solo format against
// a simulated history of round one.
package app

import (
	"context"
	"time"

	"github.com/mistergarrison/debatematcher/internal/domain/bye"
	"github.com/mistergarrison/debatematcher/internal/domain/history"
	"github.com/mistergarrison/debatematcher/internal/domain/model"
	"github.com/mistergarrison/debatematcher/internal/domain/pairing"
	"github.com/mistergarrison/debatematcher/internal/domain/resources"
	"github.com/mistergarrison/debatematcher/internal/domain/units"
	"github.com/mistergarrison/debatematcher/pkg/logger"
	"github.com/mistergarrison/debatematcher/pkg/metrics"
)

// Round numbers produced per format.
const (
	teamRound      = 1
	soloFirstRound = 1
	soloFinalRound = 2
)

// Fixture carries everything one run consumes: the present roster slices
// for one format and the full external log. The engine holds no state
// between invocations; history is rebuilt from the log every run.
type Fixture struct {
	Format       model.Format
	Date         string
	Competitors  []model.Competitor
	Adjudicators []model.Adjudicator
	Venues       []model.Venue
	History      []model.HistoryRow
}

// Result is the terminal outcome of a run, handed to the caller for
// persistence. A failed run never produces a partial Result.
type Result struct {
	Format   model.Format
	Date     string
	Pairings []*model.Pairing
}

// Service is the assignment engine. One invocation processes one event in
// one format, synchronously end-to-end.
type Service struct {
	tune   model.Tuning
	former *units.Former
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTuning sets the penalty weights and search budget for the run.
func WithTuning(tune model.Tuning) Option {
	return func(s *Service) {
		if tune.SearchIterations > 0 {
			s.tune = tune
		}
	}
}

// WithInheritance overrides the fallback-history inheritance policy.
func WithInheritance(policy units.InheritancePolicy) Option {
	return func(s *Service) {
		s.former = units.New(units.WithInheritance(policy))
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tune:   model.DefaultTuning(),
		former: units.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run executes one complete assignment. Everything happens in a single
// uninterrupted invocation; on any fatal error zero pairings are returned
// so partial results are never observable.
func (s *Service) Run(ctx context.Context, fx Fixture) (*Result, error) {
	const op = "app.run"
	start := time.Now()

	result, err := s.run(ctx, fx)
	if err != nil {
		metrics.RecordRunFailure(failureKind(err))
		s.logger.Error(ctx, "assignment run failed",
			logger.String("format", string(fx.Format)),
			logger.Error(err),
		)
		return nil, Wrap(op, err)
	}

	elapsed := time.Since(start)
	metrics.RecordRun(string(fx.Format))
	metrics.RecordRunDuration(float64(elapsed.Milliseconds()))
	metrics.RecordPairings(len(result.Pairings))
	s.logger.Info(ctx, "assignment run complete",
		logger.String("format", string(fx.Format)),
		logger.Int("pairings", len(result.Pairings)),
		logger.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (s *Service) run(ctx context.Context, fx Fixture) (*Result, error) {
	if len(fx.Competitors) == 0 {
		return nil, ErrNoCompetitors
	}

	view := history.Aggregate(fx.History)
	s.logger.Debug(ctx, "history aggregated",
		logger.Int("rows", len(fx.History)),
		logger.Int("competitors", view.Size()),
	)

	switch fx.Format {
	case model.FormatTeam:
		return s.runTeam(ctx, fx, view)
	case model.FormatSolo:
		return s.runSolo(ctx, fx, view)
	default:
		return nil, NewKind(string(fx.Format), ErrUnknownFormat)
	}
}

// runTeam produces the single round of the team format.
func (s *Service) runTeam(ctx context.Context, fx Fixture, view *history.View) (*Result, error) {
	pool := s.former.Form(fx.Competitors, view)
	pairings, _, err := s.runRound(ctx, teamRound, pool, "", fx, view)
	if err != nil {
		return nil, err
	}
	return &Result{Format: fx.Format, Date: fx.Date, Pairings: pairings}, nil
}

// runSolo produces both rounds of the solo format. Round two is computed
// against a private copy of the history view with round one folded in, as
// if round one were already on record; the external log is untouched.
// Adjudicator and venue pools reset to full for round two; cross-round
// reuse is only discouraged by the re-adjudication penalty.
func (s *Service) runSolo(ctx context.Context, fx Fixture, view *history.View) (*Result, error) {
	pool := s.former.FormSolo(fx.Competitors, view)
	first, firstBye, err := s.runRound(ctx, soloFirstRound, pool, "", fx, view)
	if err != nil {
		return nil, err
	}

	simulated := view.Clone()
	simulated.Fold(first)

	exclude := ""
	if firstBye != nil {
		exclude = firstBye.Key
	}
	pool = s.former.FormSolo(fx.Competitors, simulated)
	second, _, err := s.runRound(ctx, soloFinalRound, pool, exclude, fx, simulated)
	if err != nil {
		return nil, err
	}

	return &Result{Format: fx.Format, Date: fx.Date, Pairings: append(first, second...)}, nil
}

// runRound drives one round: BYE selection, pairing optimization, and
// resource assignment against the given view.
func (s *Service) runRound(ctx context.Context, round int, pool []model.Unit, exclude string, fx Fixture, view *history.View) ([]*model.Pairing, *model.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rest, sitOut := bye.Select(pool, exclude)
	if sitOut != nil {
		s.logger.Info(ctx, "bye selected",
			logger.Int("round", round),
			logger.String("unit", sitOut.Key),
		)
	}

	pairings := pairing.Optimize(rest, s.tune)
	for _, p := range pairings {
		p.Round = round
	}

	if err := resources.Assign(ctx, pairings, fx.Adjudicators, fx.Venues, view, s.tune); err != nil {
		return nil, nil, err
	}

	if sitOut != nil {
		pairings = append(pairings, &model.Pairing{Round: round, SideA: sitOut})
		metrics.RecordBye()
	}
	return pairings, sitOut, nil
}

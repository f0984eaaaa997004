// Package analysis runs the trackers over one replay: it picks the players
// to follow, drives the event stream up to the cutoff and collects the
// resulting timelines.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/skilltracker/pkg/observability"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// Player selection errors.
var (
	ErrNoZergPlayers  = errors.New("no Zerg players found")
	ErrTooManyPlayers = errors.New("more than two Zerg players, only 1v1 games are supported")
	ErrPlayerNotFound = errors.New("player not found in replay")
)

// CutoffStep is the player stats cadence in game seconds. Requested cutoffs
// are floored to it so the last larvae sample lines up with the cutoff.
const CutoffStep = 10

const maxPlayers = 2

// Options configures one analysis run.
type Options struct {
	Cutoff         track.Cutoff
	Curve          drones.TargetCurve
	InjectDuration int
	Match          track.PlayerMatcher

	// Player restricts the analysis to one player, whatever their race.
	// Empty follows every Zerg player.
	Player string
}

// Result is the outcome of one analyzed replay.
type Result struct {
	Path    string
	Map     string
	Players []replay.Player

	// Requested is the cutoff after flooring to CutoffStep.
	Requested track.Cutoff
	track.Result

	Sets []*Set
}

// Analyzer runs tracker sets over replays.
type Analyzer struct {
	loader  replay.Loader
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.ReplayMetrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyzer) { a.tracer = tracer }
}

// WithMetrics sets the replay metrics.
func WithMetrics(metrics *observability.ReplayMetrics) Option {
	return func(a *Analyzer) { a.metrics = metrics }
}

// New creates an Analyzer reading replays through loader.
func New(loader replay.Loader, options ...Option) *Analyzer {
	a := &Analyzer{
		loader: loader,
		logger: slog.Default(),
		tracer: otel.Tracer("skilltracker/analysis"),
	}

	for _, opt := range options {
		opt(a)
	}

	return a
}

// Players returns the players of a replay that report economy snapshots.
func (a *Analyzer) Players(ctx context.Context, path string) ([]replay.Player, error) {
	ctx, span := a.tracer.Start(ctx, "skilltracker.players",
		trace.WithAttributes(attribute.String("replay.path", path)))
	defer span.End()

	r, err := a.loader.Info(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("read players: %w", err)
	}

	return r.Players, nil
}

// Analyze loads the replay at path and runs the trackers over it.
func (a *Analyzer) Analyze(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()

	ctx, span := a.tracer.Start(ctx, "skilltracker.analyze",
		trace.WithAttributes(attribute.String("replay.path", path)))
	defer span.End()

	res, err := a.analyze(ctx, path, opts)

	delivered := 0
	if res != nil {
		delivered = res.Delivered
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.metrics.RecordReplay(ctx, observability.OutcomeError, delivered, time.Since(start))

		return nil, err
	}

	span.SetAttributes(
		attribute.Int("replay.cutoff", res.Cutoff),
		attribute.Int("replay.events_delivered", delivered),
	)
	a.metrics.RecordReplay(ctx, observability.OutcomeOK, delivered, time.Since(start))

	return res, nil
}

func (a *Analyzer) analyze(ctx context.Context, path string, opts Options) (*Result, error) {
	r, err := a.load(ctx, path)
	if err != nil {
		return nil, err
	}

	selected, err := a.selectPlayers(r.Players, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &Result{
		Path:      r.Path,
		Map:       r.Map,
		Players:   r.Players,
		Requested: opts.Cutoff.Floor(CutoffStep),
		Sets:      make([]*Set, len(selected)),
	}

	var consumers []track.Consumer

	for i, p := range selected {
		res.Sets[i] = NewSet(p, opts, a.logger)
		consumers = append(consumers, res.Sets[i].Consumers()...)
	}

	_, span := a.tracer.Start(ctx, "skilltracker.consume")
	res.Result, err = track.Consume(r.Events, consumers, res.Requested)
	span.End()

	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	a.logger.InfoContext(ctx, "replay analyzed",
		"path", path,
		"map", res.Map,
		"players", playerNames(selected),
		"requested_cutoff", res.Requested.String(),
		"cutoff", replay.GameTimestamp(res.Cutoff),
		"left", res.Left,
		"events", res.Delivered,
	)

	return res, nil
}

func (a *Analyzer) load(ctx context.Context, path string) (*replay.Replay, error) {
	ctx, span := a.tracer.Start(ctx, "skilltracker.load")
	defer span.End()

	r, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load replay: %w", err)
	}

	return r, nil
}

func (a *Analyzer) selectPlayers(players []replay.Player, opts Options) ([]replay.Player, error) {
	if opts.Player == "" {
		return ZergPlayers(players)
	}

	owner := track.NewOwner(opts.Player, opts.Match)

	for _, p := range players {
		if owner.Owns(p.Name) {
			// Keep the configured name so prefix matching stays in effect.
			p.Name = opts.Player

			return []replay.Player{p}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, opts.Player)
}

// ZergPlayers picks the Zerg players of a 1v1 game.
func ZergPlayers(players []replay.Player) ([]replay.Player, error) {
	var zerg []replay.Player

	for _, p := range players {
		if p.IsZerg() {
			zerg = append(zerg, p)
		}
	}

	switch {
	case len(zerg) == 0:
		return nil, ErrNoZergPlayers
	case len(zerg) > maxPlayers:
		return nil, fmt.Errorf("%w: found %d", ErrTooManyPlayers, len(zerg))
	}

	return zerg, nil
}

func playerNames(players []replay.Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	return names
}

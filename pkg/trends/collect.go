// Package trends follows skill metrics across a player's recent replays.
package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// MinPoints is the fewest accepted replays a trend line needs.
const MinPoints = 2

// Errors returned by Collect.
var (
	ErrNotEnoughReplays = errors.New("not enough replays for a trend")
	ErrNoPlayer         = errors.New("trends need a configured player")
	ErrInvalidCount     = errors.New("replay count must be positive")
)

// Key identifies one replay's data points. A changed file gets a new key.
type Key struct {
	Path    string
	Size    int64
	ModTime time.Time
	Player  string
	Cutoff  int
}

// Entry is the cached outcome of one replay.
type Entry struct {
	Accepted bool               `json:"accepted"`
	Values   map[string]float64 `json:"values,omitempty"`
}

// Cache stores per-replay entries between runs.
type Cache interface {
	Get(key Key) (Entry, bool, error)
	Put(key Key, entry Entry) error
}

// Options configures a collection.
type Options struct {
	Player string
	// Cutoff is the trend cutoff in game seconds.
	Cutoff int
	// ShortGame skips replays whose actual cutoff is below it.
	ShortGame int
	Replays   int
	Recent    int

	Analysis analysis.Options
	Metrics  []Metric

	// Progress, when set, is called after every inspected replay.
	Progress func(inspected, accepted int)
}

// Point is one accepted replay.
type Point struct {
	Path    string             `json:"path"     yaml:"path"`
	ModTime time.Time          `json:"mod_time" yaml:"mod_time"`
	Values  map[string]float64 `json:"values"   yaml:"values"`
}

// Series is one metric over the accepted replays, oldest first.
type Series struct {
	Metric  string    `json:"metric"  yaml:"metric"`
	Title   string    `json:"title"   yaml:"title"`
	Unit    string    `json:"unit"    yaml:"unit"`
	Values  []float64 `json:"values"  yaml:"values"`
	Overall Fit       `json:"overall" yaml:"overall"`
	Recent  Fit       `json:"recent"  yaml:"recent"`
}

// Result holds every trend of a collection.
type Result struct {
	Player    string   `json:"player"    yaml:"player"`
	Cutoff    int      `json:"cutoff"    yaml:"cutoff"`
	Inspected int      `json:"inspected" yaml:"inspected"`
	Points    []Point  `json:"points"    yaml:"points"`
	Series    []Series `json:"series"    yaml:"series"`
}

// Collector gathers trend data points.
type Collector struct {
	analyzer *analysis.Analyzer
	cache    Cache
	logger   *slog.Logger
}

// NewCollector creates a collector. A nil cache disables caching.
func NewCollector(analyzer *analysis.Analyzer, cache Cache, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Collector{analyzer: analyzer, cache: cache, logger: logger}
}

// Collect walks files newest first until opts.Replays replays are accepted.
func (c *Collector) Collect(ctx context.Context, files []replay.File, opts Options) (*Result, error) {
	if opts.Player == "" {
		return nil, ErrNoPlayer
	}

	if opts.Replays <= 0 {
		return nil, ErrInvalidCount
	}

	if len(opts.Metrics) == 0 {
		opts.Metrics = DefaultMetrics()
	}

	ordered := slices.Clone(files)
	slices.SortStableFunc(ordered, func(a, b replay.File) int {
		return b.ModTime.Compare(a.ModTime)
	})

	res := &Result{Player: opts.Player, Cutoff: opts.Cutoff}

	for _, f := range ordered {
		if len(res.Points) >= opts.Replays {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, err := c.entry(ctx, f, opts)
		if err != nil {
			return nil, err
		}

		res.Inspected++

		if entry.Accepted {
			res.Points = append(res.Points, Point{Path: f.Path, ModTime: f.ModTime, Values: entry.Values})
		}

		if opts.Progress != nil {
			opts.Progress(res.Inspected, len(res.Points))
		}
	}

	if len(res.Points) < MinPoints {
		return nil, fmt.Errorf("%w: %d accepted of %d inspected", ErrNotEnoughReplays, len(res.Points), res.Inspected)
	}

	slices.Reverse(res.Points)

	for _, m := range opts.Metrics {
		res.Series = append(res.Series, series(m, res.Points, opts.Recent))
	}

	return res, nil
}

func series(m Metric, points []Point, recent int) Series {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Values[m.Name()]
	}

	from := 0
	if recent > 0 && recent < len(values) {
		from = len(values) - recent
	}

	return Series{
		Metric:  m.Name(),
		Title:   m.Title(),
		Unit:    m.Unit(),
		Values:  values,
		Overall: FitLine(values, 0),
		Recent:  FitLine(values, from),
	}
}

func (c *Collector) entry(ctx context.Context, f replay.File, opts Options) (Entry, error) {
	key := Key{Path: f.Path, Size: f.Size, ModTime: f.ModTime, Player: opts.Player, Cutoff: opts.Cutoff}

	if c.cache != nil {
		cached, ok, err := c.cache.Get(key)
		if err != nil {
			c.logger.WarnContext(ctx, "trend cache read failed", "path", f.Path, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	entry, err := c.measure(ctx, f.Path, opts)
	if err != nil {
		if ctx.Err() != nil {
			return Entry{}, ctx.Err()
		}

		c.logger.WarnContext(ctx, "skipping replay", "path", f.Path, "error", err)

		return Entry{}, nil
	}

	if c.cache != nil {
		if err := c.cache.Put(key, entry); err != nil {
			c.logger.WarnContext(ctx, "trend cache write failed", "path", f.Path, "error", err)
		}
	}

	return entry, nil
}

func (c *Collector) measure(ctx context.Context, path string, opts Options) (Entry, error) {
	aopts := opts.Analysis
	aopts.Player = opts.Player
	aopts.Cutoff = track.At(opts.Cutoff)

	res, err := c.analyzer.Analyze(ctx, path, aopts)
	if err != nil {
		if errors.Is(err, analysis.ErrPlayerNotFound) {
			c.logger.DebugContext(ctx, "player not in replay", "path", path)

			return Entry{}, nil
		}

		return Entry{}, err
	}

	if res.Cutoff < opts.ShortGame {
		c.logger.DebugContext(ctx, "short game", "path", path, "cutoff", res.Cutoff)

		return Entry{}, nil
	}

	set := res.Sets[0]
	values := make(map[string]float64, len(opts.Metrics))

	for _, m := range opts.Metrics {
		v, ok, err := m.Measure(res, set)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", m.Name(), err)
		}

		if !ok {
			return Entry{}, nil
		}

		values[m.Name()] = v
	}

	return Entry{Accepted: true, Values: values}, nil
}

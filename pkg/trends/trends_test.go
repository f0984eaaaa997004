package trends_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/report"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trends"
)

const (
	player = "Serral"
	cutoff = 100
)

var errBroken = errors.New("broken file")

type fakeLoader map[string]*replay.Replay

func (f fakeLoader) Load(_ context.Context, path string) (*replay.Replay, error) {
	r, ok := f[path]
	if !ok {
		return nil, errBroken
	}

	return r, nil
}

func (f fakeLoader) Info(ctx context.Context, path string) (*replay.Replay, error) {
	return f.Load(ctx, path)
}

type mapCache struct {
	entries map[trends.Key]trends.Entry
	puts    int
}

func (c *mapCache) Get(key trends.Key) (trends.Entry, bool, error) {
	e, ok := c.entries[key]

	return e, ok, nil
}

func (c *mapCache) Put(key trends.Key, entry trends.Entry) error {
	c.entries[key] = entry
	c.puts++

	return nil
}

type game struct {
	larvae    int
	injects   int
	length    int
	hatchDies int
	owner     string
}

func (g game) replay(path string) *replay.Replay {
	owner := g.owner
	if owner == "" {
		owner = player
	}

	unit := func(id int64, name string) replay.Unit {
		return replay.Unit{ID: id, Name: name, Owner: owner}
	}

	events := []replay.Event{
		replay.UnitBorn{Time: 0, Unit: unit(1, replay.UnitHatchery)},
		replay.UnitBorn{Time: 0, Unit: unit(2, replay.UnitQueen)},
	}

	for i := range g.larvae {
		events = append(events, replay.UnitBorn{Time: 0, Unit: unit(int64(100+i), replay.UnitLarva)})
	}

	for i := range g.injects {
		events = append(events, replay.TargetUnitCommand{
			Time: i * 40, Player: owner, Ability: replay.AbilitySpawnLarva, TargetID: 1,
		})
	}

	if g.hatchDies > 0 {
		events = append(events, replay.UnitDied{Time: g.hatchDies, Unit: unit(1, replay.UnitHatchery)})
	}

	for t := 10; t <= g.length; t += 10 {
		events = append(events, replay.PlayerStats{Time: t, Player: owner, SupplyUsed: 12, SupplyCap: 14})
	}

	slices.SortStableFunc(events, func(a, b replay.Event) int { return a.Second() - b.Second() })

	return &replay.Replay{
		Path:    path,
		Map:     "Alcyone LE",
		Players: []replay.Player{{Name: owner, Race: "Zerg", ID: 1}},
		Events:  events,
	}
}

type fixture struct {
	loader fakeLoader
	files  []replay.File
}

// newFixture registers games oldest first.
func newFixture(games ...game) fixture {
	f := fixture{loader: fakeLoader{}}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, g := range games {
		path := "r" + string(rune('a'+i)) + ".SC2Replay"
		f.loader[path] = g.replay(path)
		f.files = append(f.files, replay.File{Path: path, Name: path, Size: 1, ModTime: base.Add(time.Duration(i) * time.Hour)})
	}

	// Listing order does not matter.
	slices.Reverse(f.files[:len(f.files)/2])

	return f
}

func collector(loader fakeLoader, cache trends.Cache) *trends.Collector {
	logger := slog.New(slog.DiscardHandler)
	an := analysis.New(loader, analysis.WithLogger(logger))

	return trends.NewCollector(an, cache, logger)
}

func options() trends.Options {
	return trends.Options{Player: player, Cutoff: cutoff, ShortGame: 60, Replays: 10, Recent: 2}
}

func seriesOf(t *testing.T, res *trends.Result, metric string) trends.Series {
	t.Helper()

	for _, s := range res.Series {
		if s.Metric == metric {
			return s
		}
	}

	require.Failf(t, "missing series", "%s", metric)

	return trends.Series{}
}

func TestCollect_OldestFirstWithFits(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 2, injects: 2, length: 200},
		game{larvae: 1, injects: 3, length: 200},
	)

	res, err := collector(f.loader, nil).Collect(context.Background(), f.files, options())
	require.NoError(t, err)

	require.Len(t, res.Points, 3)
	assert.Equal(t, "ra.SC2Replay", res.Points[0].Path)
	assert.Equal(t, "rc.SC2Replay", res.Points[2].Path)
	assert.Equal(t, 3, res.Inspected)

	larva := seriesOf(t, res, trends.MetricLarvaSpending)
	assert.Equal(t, []float64{3, 2, 1}, larva.Values)
	assert.InDelta(t, -1.0, larva.Overall.Slope, 1e-9)
	assert.InDelta(t, 3.0, larva.Overall.Intercept, 1e-9)
	assert.Equal(t, 1, larva.Recent.From)

	inject := seriesOf(t, res, trends.MetricInjectProportion)
	require.Len(t, inject.Values, 3)
	assert.InDelta(t, 40.0, inject.Values[0], 1e-9)
	assert.InDelta(t, 80.0, inject.Values[1], 1e-9)
	assert.InDelta(t, 100.0, inject.Values[2], 1e-9)
	assert.InDelta(t, 30.0, inject.Overall.Slope, 1e-9)
	assert.InDelta(t, 20.0, inject.Recent.Slope, 1e-9)
}

func TestCollect_StopsAtReplayCount(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 2, injects: 1, length: 200},
		game{larvae: 1, injects: 1, length: 200},
	)

	opts := options()
	opts.Replays = 2

	res, err := collector(f.loader, nil).Collect(context.Background(), f.files, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Inspected)
	assert.Equal(t, []float64{2, 1}, seriesOf(t, res, trends.MetricLarvaSpending).Values)
}

func TestCollect_SkipsUnqualifiedReplays(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 9, injects: 1, length: 50},                // shorter than the short-game cutoff
		game{larvae: 9, injects: 1, length: 80},                // ended before the trend cutoff
		game{larvae: 9, injects: 1, length: 200, hatchDies: 90}, // main hatchery lost
		game{larvae: 9, injects: 1, length: 200, owner: "Clem"}, // someone else's game
		game{larvae: 1, injects: 1, length: 200},
	)
	f.files = append(f.files, replay.File{Path: "missing.SC2Replay", ModTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})

	var progress []int

	opts := options()
	opts.Progress = func(_, accepted int) { progress = append(progress, accepted) }

	res, err := collector(f.loader, nil).Collect(context.Background(), f.files, opts)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Inspected)
	assert.Equal(t, []float64{3, 1}, seriesOf(t, res, trends.MetricLarvaSpending).Values)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 2, 2}, progress)
}

func TestCollect_NotEnoughReplays(t *testing.T) {
	t.Parallel()

	f := newFixture(game{larvae: 3, injects: 1, length: 200}, game{larvae: 3, injects: 1, length: 50})

	_, err := collector(f.loader, nil).Collect(context.Background(), f.files, options())
	require.ErrorIs(t, err, trends.ErrNotEnoughReplays)
}

func TestCollect_InvalidOptions(t *testing.T) {
	t.Parallel()

	c := collector(fakeLoader{}, nil)

	opts := options()
	opts.Player = ""
	_, err := c.Collect(context.Background(), nil, opts)
	require.ErrorIs(t, err, trends.ErrNoPlayer)

	opts = options()
	opts.Replays = 0
	_, err = c.Collect(context.Background(), nil, opts)
	require.ErrorIs(t, err, trends.ErrInvalidCount)
}

func TestCollect_UsesCache(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 2, injects: 1, length: 50},
		game{larvae: 1, injects: 1, length: 200},
	)
	cache := &mapCache{entries: map[trends.Key]trends.Entry{}}

	first, err := collector(f.loader, cache).Collect(context.Background(), f.files, options())
	require.NoError(t, err)
	assert.Equal(t, 3, cache.puts)

	// Every replay is answered from the cache, including the rejected one.
	second, err := collector(fakeLoader{}, cache).Collect(context.Background(), f.files, options())
	require.NoError(t, err)
	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, 3, cache.puts)
}

func TestCollect_Cancelled(t *testing.T) {
	t.Parallel()

	f := newFixture(game{larvae: 3, injects: 1, length: 200}, game{larvae: 3, injects: 1, length: 200})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collector(f.loader, nil).Collect(ctx, f.files, options())
	require.ErrorIs(t, err, context.Canceled)
}

func TestFitLine(t *testing.T) {
	t.Parallel()

	fit := trends.FitLine([]float64{1, 3, 5, 7}, 0)
	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 9.0, fit.At(4), 1e-9)

	recent := trends.FitLine([]float64{1, 3, 10, 10}, 2)
	assert.Equal(t, 2, recent.From)
	assert.InDelta(t, 0.0, recent.Slope, 1e-9)
	assert.InDelta(t, 10.0, recent.At(3), 1e-9)

	single := trends.FitLine([]float64{1, 4}, 1)
	assert.InDelta(t, 4.0, single.Intercept, 1e-9)
	assert.Zero(t, single.Slope)

	assert.Equal(t, 2, trends.FitLine([]float64{1, 2}, 5).From)
}

func TestResult_Output(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 1, injects: 2, length: 200},
	)

	res, err := collector(f.loader, nil).Collect(context.Background(), f.files, options())
	require.NoError(t, err)

	assert.Equal(t, []string{"1 2026-01-01", "2 2026-01-01"}, res.Labels())

	var page bytes.Buffer
	require.NoError(t, res.WritePlot(&page, plotpage.ThemeLight))
	assert.Equal(t, 2, strings.Count(page.String(), `class="echart-box"`))
	assert.Contains(t, page.String(), "Larva spending")

	var text bytes.Buffer
	require.NoError(t, res.WriteText(&text, false))
	assert.Contains(t, text.String(), "TRENDS FOR SERRAL")
	assert.Contains(t, text.String(), "Main hatchery inject uptime")
	assert.Contains(t, text.String(), "-2.000")
}

func TestResult_Write(t *testing.T) {
	t.Parallel()

	f := newFixture(
		game{larvae: 3, injects: 1, length: 200},
		game{larvae: 1, injects: 2, length: 200},
	)

	res, err := collector(f.loader, nil).Collect(context.Background(), f.files, options())
	require.NoError(t, err)

	var js bytes.Buffer
	require.NoError(t, res.Write(&js, report.FormatJSON, report.WriteOptions{}))
	assert.Contains(t, js.String(), `"metric": "larva_spending"`)

	var ym bytes.Buffer
	require.NoError(t, res.Write(&ym, "YAML", report.WriteOptions{}))
	assert.Contains(t, ym.String(), "metric: inject_proportion")

	require.ErrorIs(t, res.Write(&bytes.Buffer{}, "csv", report.WriteOptions{}), report.ErrUnsupportedFormat)
}

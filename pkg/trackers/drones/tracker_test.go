package drones_test

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/registry"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

const me = "Serral"

func drone(id int64, owner string) replay.Unit {
	return replay.Unit{ID: id, Name: replay.UnitDrone, Owner: owner}
}

func newTracker() *drones.Tracker {
	return drones.New(track.NewOwner(me, nil), drones.DefaultTargetCurve())
}

func TestTracker_CountsBornAndDied(t *testing.T) {
	t.Parallel()

	tr := newTracker()

	for _, ev := range []replay.Event{
		replay.UnitBorn{Time: 0, Unit: drone(1, me)},
		replay.UnitBorn{Time: 0, Unit: drone(2, me)},
		replay.UnitBorn{Time: 0, Unit: drone(3, "Reynor")},
		replay.UnitBorn{Time: 5, Unit: replay.Unit{ID: 4, Name: "DroneBurrowed", Owner: me}},
		replay.UnitBorn{Time: 20, Unit: drone(5, me)},
		replay.UnitDied{Time: 40, Unit: drone(1, me)},
	} {
		require.NoError(t, tr.Consume(ev))
	}

	assert.Equal(t, []drones.Sample{
		{Time: 0, Drones: 1},
		{Time: 0, Drones: 2},
		{Time: 20, Drones: 3},
		{Time: 40, Drones: 2},
	}, tr.Samples())
	assert.Equal(t, 2, tr.Count())
}

func TestTracker_BornAndDiedSameSecond(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 0, Unit: drone(1, me)}))

	before := tr.Count()

	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 30, Unit: drone(2, me)}))
	require.NoError(t, tr.Consume(replay.UnitDied{Time: 30, Unit: drone(2, me)}))

	assert.Equal(t, before, tr.Count())

	samples := tr.Samples()
	require.Len(t, samples, 3)
	assert.Equal(t, samples[1].Time, samples[2].Time)
	assert.NotEqual(t, samples[1].Drones, samples[2].Drones)
}

func TestTracker_UnpairedDeathFails(t *testing.T) {
	t.Parallel()

	err := newTracker().Consume(replay.UnitDied{Time: 10, Unit: drone(9, me)})
	require.ErrorIs(t, err, registry.ErrUnknownUnit)
}

func TestTracker_CountAt(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 3, Unit: drone(1, me)}))
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 8, Unit: drone(2, me)}))

	assert.Equal(t, -1, tr.CountAt(2))
	assert.Equal(t, 1, tr.CountAt(3))
	assert.Equal(t, 2, tr.CountAt(100))
}

func TestTracker_SeriesExtendsToCutoff(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 1, Unit: drone(1, me)}))
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 3, Unit: drone(2, me)}))

	series := tr.Series(5)
	require.Len(t, series, 6)
	assert.Nil(t, series[0])

	got := make([]int, 0, 5)
	for _, v := range series[1:] {
		require.NotNil(t, v)
		got = append(got, *v)
	}

	assert.Equal(t, []int{1, 1, 2, 2, 2}, got)
}

func TestTracker_Chart(t *testing.T) {
	t.Parallel()

	tr := newTracker()
	require.NoError(t, tr.Consume(replay.UnitBorn{Time: 0, Unit: drone(1, me)}))

	chart := tr.Chart(plotpage.DefaultChartOpts(), 60)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "drones actual", chart.MultiSeries[0].Name)
	assert.Equal(t, "drones target", chart.MultiSeries[1].Name)

	data, ok := chart.MultiSeries[1].Data.([]opts.LineData)
	require.True(t, ok)
	assert.Len(t, data, 61)

	assert.Equal(t, track.KindDrones, tr.Kind())
	section, err := tr.Section(nil, 60)
	require.NoError(t, err)
	assert.Equal(t, me, section.Group)
}

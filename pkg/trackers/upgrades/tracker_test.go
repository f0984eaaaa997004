package upgrades_test

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/injects"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/upgrades"
)

const me = "Serral"

func TestTracker_RecordsKnownUpgrades(t *testing.T) {
	t.Parallel()

	tr := upgrades.New(track.NewOwner(me, nil))

	for _, ev := range []replay.Event{
		replay.UpgradeComplete{Time: 10, Player: me, Upgrade: "SprayZerg"},
		replay.UpgradeComplete{Time: 300, Player: me, Upgrade: "ZergMissileWeaponsLevel1"},
		replay.UpgradeComplete{Time: 310, Player: "Reynor", Upgrade: "ZergMeleeWeaponsLevel1"},
		replay.UpgradeComplete{Time: 420, Player: me, Upgrade: "ZergGroundArmorsLevel1"},
		replay.PlayerStats{Time: 420, Player: me},
	} {
		require.NoError(t, tr.Consume(ev))
	}

	assert.Equal(t, []upgrades.Sample{
		{Time: 300, Name: "ZergMissileWeaponsLevel1", Label: "Ground Range 1"},
		{Time: 420, Name: "ZergGroundArmorsLevel1", Label: "Ground Carapace 1"},
	}, tr.Samples())
	assert.Equal(t, track.KindUpgrades, tr.Kind())
	assert.Equal(t, me, tr.Player())
}

func TestLabelOf(t *testing.T) {
	t.Parallel()

	label, ok := upgrades.LabelOf("ZergFlyerArmorsLevel3")
	assert.True(t, ok)
	assert.Equal(t, "Air Carapace 3", label)

	_, ok = upgrades.LabelOf("GlialReconstitution")
	assert.False(t, ok)
}

func TestTracker_SharesOnlyWithDrones(t *testing.T) {
	t.Parallel()

	owner := track.NewOwner(me, nil)
	tr := upgrades.New(owner)

	assert.True(t, tr.CanShareWith(drones.New(owner, drones.DefaultTargetCurve())))
	assert.False(t, tr.CanShareWith(injects.New(owner, injects.DefaultDuration, nil)))
	assert.False(t, tr.CanShareWith(tr))
}

func TestOverlayOptions(t *testing.T) {
	t.Parallel()

	owner := track.NewOwner(me, nil)
	tr := upgrades.New(owner)

	axis := plotpage.SecondsAxis(600)
	assert.Empty(t, tr.OverlayOptions(axis, plotpage.DefaultChartOpts()))

	require.NoError(t, tr.Consume(replay.UpgradeComplete{Time: 300, Player: me, Upgrade: "ZergMeleeWeaponsLevel2"}))

	chart := drones.New(owner, drones.DefaultTargetCurve()).Chart(plotpage.DefaultChartOpts(), 600, tr)
	require.NotEmpty(t, chart.MultiSeries)

	marks := chart.MultiSeries[0].MarkLines
	require.NotNil(t, marks)
	require.Len(t, marks.Data, 1)
	assert.Equal(t, opts.MarkLineNameXAxisItem{Name: "Melee 2", XAxis: 300}, marks.Data[0])
}

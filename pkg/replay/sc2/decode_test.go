package sc2

import (
	"log/slog"
	"testing"

	"github.com/icza/s2prot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

func raw(name string, loop int64, fields s2prot.Struct) s2prot.Event {
	fields["loop"] = loop

	return s2prot.Event{Struct: fields, EvtType: &s2prot.EvtType{Name: name}}
}

func testPlayers() []replay.Player {
	return []replay.Player{
		{Name: "Serral", Race: "Zerg", ID: 1},
		{Name: "Reynor", Race: "Zerg", ID: 2},
	}
}

func testDecoder() *decoder {
	return newDecoder(testPlayers(), map[int64]string{0: "Serral", 1: "Reynor"},
		map[int64]string{110: replay.AbilitySpawnLarva}, slog.New(slog.DiscardHandler))
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1<<18|3), UnitID(1, 3))
	assert.Equal(t, 0, Second(15))
	assert.Equal(t, 1, Second(16))
	assert.Equal(t, 62, Second(1000))
	assert.Equal(t, "Serral", CleanName("&lt;ENCE&gt;<sp/>Serral"))
	assert.Equal(t, "Serral", CleanName("Serral"))
}

func TestMerge_GameEventsFirstOnTies(t *testing.T) {
	t.Parallel()

	game := []s2prot.Event{
		raw(evtCmd, 16, s2prot.Struct{"id": "g1"}),
		raw(evtCmd, 48, s2prot.Struct{"id": "g2"}),
	}
	tracker := []s2prot.Event{
		raw(evtUnitBorn, 0, s2prot.Struct{"id": "t1"}),
		raw(evtUnitBorn, 16, s2prot.Struct{"id": "t2"}),
		raw(evtUnitBorn, 64, s2prot.Struct{"id": "t3"}),
	}

	merged := merge(game, tracker)
	require.Len(t, merged, 5)

	ids := make([]string, len(merged))
	for i, ev := range merged {
		ids[i] = ev.Struct.Stringv("id")
	}

	assert.Equal(t, []string{"t1", "g1", "t2", "g2", "t3"}, ids)
}

func TestDecode_UnitLifecycle(t *testing.T) {
	t.Parallel()

	d := testDecoder()
	tag := s2prot.Struct{"unitTagIndex": int64(7), "unitTagRecycle": int64(1)}

	with := func(extra s2prot.Struct) s2prot.Struct {
		out := s2prot.Struct{}
		for k, v := range tag {
			out[k] = v
		}

		for k, v := range extra {
			out[k] = v
		}

		return out
	}

	events := d.decode([]s2prot.Event{
		raw(evtUnitBorn, 0, with(s2prot.Struct{"unitTypeName": "Larva", "controlPlayerId": int64(1)})),
		raw(evtUnitTypeChange, 160, with(s2prot.Struct{"unitTypeName": "Egg"})),
		raw(evtUnitTypeChange, 320, with(s2prot.Struct{"unitTypeName": "Drone"})),
		raw(evtUnitDied, 480, with(nil)),
		raw(evtUnitDied, 496, with(nil)),
	})

	id := UnitID(7, 1)
	unit := func(name string) replay.Unit { return replay.Unit{ID: id, Name: name, Owner: "Serral"} }

	assert.Equal(t, []replay.Event{
		replay.UnitBorn{Time: 0, Unit: unit("Larva")},
		replay.UnitTypeChange{Time: 10, Unit: unit("Larva"), NewType: "Egg"},
		replay.UnitTypeChange{Time: 20, Unit: unit("Egg"), NewType: "Drone"},
		replay.UnitDied{Time: 30, Unit: unit("Drone")},
	}, events)
}

func TestDecode_InitDoneAndOwnerChange(t *testing.T) {
	t.Parallel()

	d := testDecoder()
	tag := func(extra s2prot.Struct) s2prot.Struct {
		extra["unitTagIndex"] = int64(9)
		extra["unitTagRecycle"] = int64(1)

		return extra
	}

	events := d.decode([]s2prot.Event{
		raw(evtUnitInit, 16, tag(s2prot.Struct{"unitTypeName": "Hatchery", "controlPlayerId": int64(1)})),
		raw(evtUnitOwnerChange, 32, tag(s2prot.Struct{"controlPlayerId": int64(2)})),
		raw(evtUnitDone, 1136, tag(s2prot.Struct{})),
	})

	require.Len(t, events, 1)
	assert.Equal(t, replay.UnitDone{
		Time: 71,
		Unit: replay.Unit{ID: UnitID(9, 1), Name: "Hatchery", Owner: "Reynor"},
	}, events[0])
}

func TestDecode_PlayerStatsAndUpgrades(t *testing.T) {
	t.Parallel()

	d := testDecoder()

	events := d.decode([]s2prot.Event{
		raw(evtPlayerStats, 160, s2prot.Struct{
			"playerId": int64(2),
			"stats": s2prot.Struct{
				"scoreValueMineralsCurrent": int64(75),
				"scoreValueVespeneCurrent":  int64(0),
				"scoreValueFoodUsed":        int64(13 * 4096),
				"scoreValueFoodMade":        int64(14*4096 + 2048),
			},
		}),
		raw(evtPlayerStats, 160, s2prot.Struct{"playerId": int64(16)}),
		raw(evtUpgrade, 320, s2prot.Struct{"playerId": int64(1), "upgradeTypeName": "ZergMeleeWeaponsLevel1"}),
	})

	assert.Equal(t, []replay.Event{
		replay.PlayerStats{Time: 10, Player: "Reynor", Minerals: 75, SupplyUsed: 13, SupplyCap: 14.5},
		replay.UpgradeComplete{Time: 20, Player: "Serral", Upgrade: "ZergMeleeWeaponsLevel1"},
	}, events)
}

func TestDecode_CommandsAndLeave(t *testing.T) {
	t.Parallel()

	d := testDecoder()
	hatch := UnitID(3, 1)

	cmd := func(link int64, target int64) s2prot.Struct {
		return s2prot.Struct{
			"userid": s2prot.Struct{"userId": int64(0)},
			"abil":   s2prot.Struct{"abilLink": link},
			"data":   s2prot.Struct{"TargetUnit": s2prot.Struct{"tag": target}},
		}
	}

	events := d.decode([]s2prot.Event{
		raw(evtUnitBorn, 0, s2prot.Struct{
			"unitTagIndex": int64(3), "unitTagRecycle": int64(1),
			"unitTypeName": "Hatchery", "controlPlayerId": int64(1),
		}),
		raw(evtCmd, 800, cmd(110, hatch)),
		raw(evtCmd, 816, cmd(42, hatch)),
		raw(evtCmd, 832, s2prot.Struct{"abil": s2prot.Struct{"abilLink": int64(110)}}),
		raw(evtGameUserLeave, 4000, s2prot.Struct{"userid": s2prot.Struct{"userId": int64(7)}}),
		raw(evtGameUserLeave, 4800, s2prot.Struct{"userid": s2prot.Struct{"userId": int64(1)}}),
	})

	require.Len(t, events, 3)
	assert.Equal(t, replay.TargetUnitCommand{
		Time: 50, Player: "Serral", Ability: replay.AbilitySpawnLarva, TargetID: hatch,
	}, events[1])
	assert.Equal(t, replay.PlayerLeave{Time: 300, Player: "Reynor"}, events[2])
}

func TestPlayers(t *testing.T) {
	t.Parallel()

	details := s2prot.Struct{"playerList": []interface{}{
		s2prot.Struct{"name": "Serral", "race": "Zerg", "control": int64(2), "workingSetSlotId": int64(0)},
		s2prot.Struct{"name": "A.I. 1 (Elite)", "race": "Terran", "control": int64(3), "workingSetSlotId": int64(1)},
	}}

	players := playerList(details)
	assert.Equal(t, []replay.Player{
		{Name: "Serral", Race: "Zerg", ID: 1},
		{Name: "A.I. 1 (Elite)", Race: "Terran", ID: 2, AI: true},
	}, players)

	initData := s2prot.Struct{"syncLobbyState": s2prot.Struct{"lobbyState": s2prot.Struct{"slots": []interface{}{
		s2prot.Struct{"userId": int64(4)},
		s2prot.Struct{"userId": nil},
	}}}}

	assert.Equal(t, map[int64]string{4: "Serral"}, userNames(players, details, initData))
	assert.Equal(t, map[int64]string{0: "Serral", 1: "A.I. 1 (Elite)"}, userNames(players, details, s2prot.Struct{}))

	tracker := []s2prot.Event{raw(evtPlayerStats, 0, s2prot.Struct{"playerId": int64(2)})}
	assert.Equal(t, players[1:], reportingPlayers(players, tracker))
}

func TestPlayers_LocalizedRaces(t *testing.T) {
	t.Parallel()

	details := s2prot.Struct{"playerList": []interface{}{
		s2prot.Struct{"name": "Elazer", "race": "Zergi", "control": int64(2)},
		s2prot.Struct{"name": "Nikita", "race": "Зерги", "control": int64(2)},
		s2prot.Struct{"name": "Maru", "race": "테란", "control": int64(2)},
	}}

	players := playerList(details)
	require.Len(t, players, 3)
	assert.Equal(t, replay.RaceZerg, players[0].Race)
	assert.Equal(t, "Зерги", players[1].Race)
	assert.Equal(t, replay.RaceTerran, players[2].Race)

	tracker := []s2prot.Event{
		raw(evtUnitBorn, 0, s2prot.Struct{"unitTypeName": "Drone", "controlPlayerId": int64(2)}),
		raw(evtUnitBorn, 0, s2prot.Struct{"unitTypeName": "Hatchery", "controlPlayerId": int64(2)}),
		raw(evtUnitBorn, 0, s2prot.Struct{"unitTypeName": "CommandCenter", "controlPlayerId": int64(3)}),
	}

	inferRaces(players, tracker)

	assert.Equal(t, replay.RaceZerg, players[1].Race)
	assert.True(t, players[0].IsZerg())
	assert.True(t, players[1].IsZerg())
	assert.False(t, players[2].IsZerg())
}

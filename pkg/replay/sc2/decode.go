package sc2

import (
	"log/slog"
	"strings"

	"github.com/icza/s2prot"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// Event type names as decoded by s2prot.
const (
	evtPlayerStats     = "PlayerStats"
	evtUnitBorn        = "UnitBorn"
	evtUnitInit        = "UnitInit"
	evtUnitDone        = "UnitDone"
	evtUnitDied        = "UnitDied"
	evtUnitTypeChange  = "UnitTypeChange"
	evtUnitOwnerChange = "UnitOwnerChange"
	evtUpgrade         = "Upgrade"
	evtCmd             = "Cmd"
	evtGameUserLeave   = "GameUserLeave"
	evtPlayerLeave     = "PlayerLeave"
)

const (
	// loopShift converts game loops to game seconds (16 loops per second).
	loopShift = 4

	// tagIndexShift packs a unit tag index and recycle counter into one id,
	// the same way command targets refer to units.
	tagIndexShift = 18

	// fixedPoint is the scale of supply values in player stats.
	fixedPoint = 4096.0

	controlComputer = 3
	clanSeparator   = "<sp/>"
)

// UnitID returns the stable id of a unit from its tag index and recycle
// counter.
func UnitID(index, recycle int64) int64 {
	return index<<tagIndexShift | recycle
}

// Second converts a game loop to whole game seconds.
func Second(loop int64) int {
	return int(loop >> loopShift)
}

// CleanName strips the clan tag prefix from a player name.
func CleanName(name string) string {
	if _, after, ok := strings.Cut(name, clanSeparator); ok {
		return after
	}

	return name
}

type unitState struct {
	name  string
	owner string
}

// decoder turns raw s2prot events into replay events. Tracker events carry
// unit lifecycles; game events carry commands and leaves.
type decoder struct {
	logger    *slog.Logger
	abilities map[int64]string
	players   map[int64]string // tracker player id -> name
	users     map[int64]string // game user id -> name
	units     map[int64]*unitState
}

func newDecoder(players []replay.Player, users map[int64]string, abilities map[int64]string, logger *slog.Logger) *decoder {
	d := &decoder{
		logger:    logger,
		abilities: abilities,
		players:   make(map[int64]string, len(players)),
		users:     users,
		units:     make(map[int64]*unitState),
	}

	for _, p := range players {
		d.players[int64(p.ID)] = p.Name
	}

	return d
}

func loop(ev s2prot.Event) int64 {
	return ev.Struct.Int("loop")
}

func evtName(ev s2prot.Event) string {
	if ev.EvtType == nil {
		return ""
	}

	return ev.EvtType.Name
}

// merge interleaves game and tracker events by loop. Both inputs are
// already ordered; on equal loops game events come first.
func merge(game, tracker []s2prot.Event) []s2prot.Event {
	out := make([]s2prot.Event, 0, len(game)+len(tracker))

	i, j := 0, 0
	for i < len(game) && j < len(tracker) {
		if loop(tracker[j]) < loop(game[i]) {
			out = append(out, tracker[j])
			j++

			continue
		}

		out = append(out, game[i])
		i++
	}

	out = append(out, game[i:]...)

	return append(out, tracker[j:]...)
}

// decode converts merged raw events. Events the trackers have no use for
// are dropped.
func (d *decoder) decode(raw []s2prot.Event) []replay.Event {
	events := make([]replay.Event, 0, len(raw)/2)

	for _, ev := range raw {
		if out, ok := d.event(ev); ok {
			events = append(events, out)
		}
	}

	return events
}

func (d *decoder) event(ev s2prot.Event) (replay.Event, bool) {
	sec := Second(loop(ev))

	switch evtName(ev) {
	case evtPlayerStats:
		return d.playerStats(ev, sec)
	case evtUnitBorn:
		unit := d.track(ev)

		return replay.UnitBorn{Time: sec, Unit: unit}, true
	case evtUnitInit:
		d.track(ev)
	case evtUnitDone:
		unit, ok := d.known(ev, sec)

		return replay.UnitDone{Time: sec, Unit: unit}, ok
	case evtUnitTypeChange:
		unit, ok := d.known(ev, sec)
		if !ok {
			return nil, false
		}

		newType := ev.Struct.Stringv("unitTypeName")
		d.units[unit.ID].name = newType

		return replay.UnitTypeChange{Time: sec, Unit: unit, NewType: newType}, true
	case evtUnitDied:
		unit, ok := d.known(ev, sec)
		if ok {
			delete(d.units, unit.ID)
		}

		return replay.UnitDied{Time: sec, Unit: unit}, ok
	case evtUnitOwnerChange:
		if unit, ok := d.known(ev, sec); ok {
			d.units[unit.ID].owner = d.players[ev.Struct.Int("controlPlayerId")]
		}
	case evtUpgrade:
		return replay.UpgradeComplete{
			Time:    sec,
			Player:  d.players[ev.Struct.Int("playerId")],
			Upgrade: ev.Struct.Stringv("upgradeTypeName"),
		}, true
	case evtCmd:
		return d.command(ev, sec)
	case evtGameUserLeave, evtPlayerLeave:
		// Observers and referees have no lobby player; their leaving does
		// not end the game.
		name, ok := d.users[ev.Struct.Int("userid", "userId")]
		if !ok {
			return nil, false
		}

		return replay.PlayerLeave{Time: sec, Player: name}, true
	}

	return nil, false
}

func (d *decoder) playerStats(ev s2prot.Event, sec int) (replay.Event, bool) {
	name, ok := d.players[ev.Struct.Int("playerId")]
	if !ok {
		return nil, false
	}

	stats := ev.Struct.Structv("stats")

	return replay.PlayerStats{
		Time:       sec,
		Player:     name,
		Minerals:   int(stats.Int("scoreValueMineralsCurrent")),
		Vespene:    int(stats.Int("scoreValueVespeneCurrent")),
		SupplyUsed: float64(stats.Int("scoreValueFoodUsed")) / fixedPoint,
		SupplyCap:  float64(stats.Int("scoreValueFoodMade")) / fixedPoint,
	}, true
}

func tagOf(ev s2prot.Event) int64 {
	return UnitID(ev.Struct.Int("unitTagIndex"), ev.Struct.Int("unitTagRecycle"))
}

// track starts following a unit from its born or init event.
func (d *decoder) track(ev s2prot.Event) replay.Unit {
	id := tagOf(ev)
	state := &unitState{
		name:  ev.Struct.Stringv("unitTypeName"),
		owner: d.players[ev.Struct.Int("controlPlayerId")],
	}
	d.units[id] = state

	return replay.Unit{ID: id, Name: state.name, Owner: state.owner}
}

func (d *decoder) known(ev s2prot.Event, sec int) (replay.Unit, bool) {
	id := tagOf(ev)

	state, ok := d.units[id]
	if !ok {
		d.logger.Debug("event for unknown unit", "event", evtName(ev), "unit", id, "time", sec)

		return replay.Unit{}, false
	}

	return replay.Unit{ID: id, Name: state.name, Owner: state.owner}, true
}

func (d *decoder) command(ev s2prot.Event, sec int) (replay.Event, bool) {
	target := ev.Struct.Int("data", "TargetUnit", "tag")
	if target == 0 {
		return nil, false
	}

	link := ev.Struct.Int("abil", "abilLink")

	ability, ok := d.abilities[link]
	if !ok {
		if state, known := d.units[target]; known && isHatchery(state.name) {
			d.logger.Debug("unmapped ability on hatchery", "abil_link", link, "time", sec)
		}

		return nil, false
	}

	return replay.TargetUnitCommand{
		Time:     sec,
		Player:   d.users[ev.Struct.Int("userid", "userId")],
		Ability:  ability,
		TargetID: target,
	}, true
}

func isHatchery(name string) bool {
	return name == replay.UnitHatchery || name == replay.UnitLair || name == replay.UnitHive
}

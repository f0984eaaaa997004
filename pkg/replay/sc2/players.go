package sc2

import (
	"github.com/icza/s2prot"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// playerList decodes the details player list. Tracker events refer to
// players by their 1-based position in it.
func playerList(details s2prot.Struct) []replay.Player {
	list := details.Array("playerList")
	players := make([]replay.Player, 0, len(list))

	for i, item := range list {
		entry, ok := item.(s2prot.Struct)
		if !ok {
			continue
		}

		players = append(players, replay.Player{
			Name: CleanName(entry.Stringv("name")),
			Race: replay.CanonicalRace(entry.Stringv("race")),
			ID:   i + 1,
			AI:   entry.Int("control") == controlComputer,
		})
	}

	return players
}

// townHalls maps each race's starting structure to the race.
var townHalls = map[string]string{
	"Hatchery":      replay.RaceZerg,
	"CommandCenter": replay.RaceTerran,
	"Nexus":         replay.RaceProtoss,
}

// inferRaces fills in race names the client localized beyond recognition
// from the first town hall each such player owns.
func inferRaces(players []replay.Player, tracker []s2prot.Event) {
	unknown := make(map[int64]*replay.Player)

	for i := range players {
		if !replay.KnownRace(players[i].Race) {
			unknown[int64(players[i].ID)] = &players[i]
		}
	}

	for _, ev := range tracker {
		if len(unknown) == 0 {
			return
		}

		if evtName(ev) != evtUnitBorn {
			continue
		}

		race, ok := townHalls[ev.Struct.Stringv("unitTypeName")]
		if !ok {
			continue
		}

		id := ev.Struct.Int("controlPlayerId")
		if p, found := unknown[id]; found {
			p.Race = race
			delete(unknown, id)
		}
	}
}

// userNames maps game user ids to player names through the lobby slots.
// Replays without lobby data fall back to the working set slot order.
func userNames(players []replay.Player, details, initData s2prot.Struct) map[int64]string {
	bySlot := make(map[int64]string, len(players))

	for i, item := range details.Array("playerList") {
		entry, ok := item.(s2prot.Struct)
		if !ok || i >= len(players) {
			continue
		}

		bySlot[entry.Int("workingSetSlotId")] = players[i].Name
	}

	users := make(map[int64]string, len(players))

	for slotID, item := range initData.Array("syncLobbyState", "lobbyState", "slots") {
		slot, ok := item.(s2prot.Struct)
		if !ok {
			continue
		}

		name, found := bySlot[int64(slotID)]
		if !found {
			continue
		}

		if userID, hasUser := slot.Value("userId").(int64); hasUser {
			users[userID] = name
		}
	}

	if len(users) == 0 {
		for slotID, name := range bySlot {
			users[slotID] = name
		}
	}

	return users
}

// reportingPlayers keeps the players that emit economy snapshots. Observers
// and referees never do.
func reportingPlayers(players []replay.Player, tracker []s2prot.Event) []replay.Player {
	seen := make(map[int64]bool, len(players))

	for _, ev := range tracker {
		if evtName(ev) == evtPlayerStats {
			seen[ev.Struct.Int("playerId")] = true
		}
	}

	out := make([]replay.Player, 0, len(players))

	for _, p := range players {
		if seen[int64(p.ID)] {
			out = append(out, p)
		}
	}

	return out
}

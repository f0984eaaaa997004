// Package replay defines the game event model consumed by trackers, together
// with game-time conversion and replay file discovery.
package replay

// Unit is a snapshot of a unit as seen by an event. ID stays stable for the
// unit's whole lifetime even when its type changes (Larva -> Egg -> Larva).
type Unit struct {
	ID    int64
	Name  string // Current type name, before any change carried by the event.
	Owner string // Owning player's name; empty for neutral units.
}

// Event is one time-stamped replay event. The set of implementations is
// closed; trackers switch over the concrete types.
type Event interface {
	// Second returns the event time in game seconds.
	Second() int

	event()
}

// UnitBorn is emitted when a unit starts to exist without construction
// (initial workers and larvae, hatched units, the starting hatchery).
type UnitBorn struct {
	Time int
	Unit Unit
}

// UnitDone is emitted when a structure finishes construction.
type UnitDone struct {
	Time int
	Unit Unit
}

// UnitTypeChange is emitted when a unit morphs. Unit.Name holds the type the
// unit had before the change.
type UnitTypeChange struct {
	Time    int
	Unit    Unit
	NewType string
}

// UnitDied is emitted when a unit stops existing.
type UnitDied struct {
	Time int
	Unit Unit
}

// PlayerStats is the periodic economy snapshot of one player.
type PlayerStats struct {
	Time       int
	Player     string
	Minerals   int
	Vespene    int
	SupplyUsed float64
	SupplyCap  float64
}

// TargetUnitCommand is an ability command issued by a player on a unit.
type TargetUnitCommand struct {
	Time     int
	Player   string
	Ability  string
	TargetID int64
}

// PlayerLeave is emitted when a player leaves the game.
type PlayerLeave struct {
	Time   int
	Player string
}

// UpgradeComplete is emitted when a player finishes researching an upgrade.
type UpgradeComplete struct {
	Time    int
	Player  string
	Upgrade string
}

// Second implements Event.
func (e UnitBorn) Second() int { return e.Time }

// Second implements Event.
func (e UnitDone) Second() int { return e.Time }

// Second implements Event.
func (e UnitTypeChange) Second() int { return e.Time }

// Second implements Event.
func (e UnitDied) Second() int { return e.Time }

// Second implements Event.
func (e PlayerStats) Second() int { return e.Time }

// Second implements Event.
func (e TargetUnitCommand) Second() int { return e.Time }

// Second implements Event.
func (e PlayerLeave) Second() int { return e.Time }

// Second implements Event.
func (e UpgradeComplete) Second() int { return e.Time }

func (UnitBorn) event()          {}
func (UnitDone) event()          {}
func (UnitTypeChange) event()    {}
func (UnitDied) event()          {}
func (PlayerStats) event()       {}
func (TargetUnitCommand) event() {}
func (PlayerLeave) event()       {}
func (UpgradeComplete) event()   {}

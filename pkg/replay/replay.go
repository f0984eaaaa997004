package replay

import "context"

// Unit type names the trackers care about.
const (
	UnitLarva    = "Larva"
	UnitEgg      = "Egg"
	UnitDrone    = "Drone"
	UnitQueen    = "Queen"
	UnitHatchery = "Hatchery"
	UnitLair     = "Lair"
	UnitHive     = "Hive"
)

// AbilitySpawnLarva is the queen's inject ability.
const AbilitySpawnLarva = "SpawnLarva"

// Player describes one participant of a replay.
type Player struct {
	Name string `json:"name" yaml:"name"`
	Race string `json:"race" yaml:"race"`
	ID   int    `json:"id"   yaml:"id"`
	AI   bool   `json:"ai"   yaml:"ai"`
}

// IsZerg reports whether the player played Zerg.
func (p Player) IsZerg() bool {
	return CanonicalRace(p.Race) == RaceZerg
}

// Replay is a decoded replay: metadata plus the chronologically ordered
// event stream.
type Replay struct {
	Path    string
	Map     string
	Players []Player
	Events  []Event
}

// Loader decodes replay files.
type Loader interface {
	// Load decodes the metadata and the full event stream.
	Load(ctx context.Context, path string) (*Replay, error)

	// Info decodes the metadata and the players only; Events is left empty.
	Info(ctx context.Context, path string) (*Replay, error)
}

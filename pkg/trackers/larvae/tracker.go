// Package larvae tracks a player's unspent larvae against banked resources
// and supply on every player-stats tick.
package larvae

import (
	"log/slog"

	"github.com/Sumatoshi-tech/skilltracker/pkg/registry"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// Sample is one player-stats tick combined with the larva count at that time.
type Sample struct {
	Time       int `json:"time"        yaml:"time"`
	SupplyUsed int `json:"supply_used" yaml:"supply_used"`
	SupplyCap  int `json:"supply_cap"  yaml:"supply_cap"`
	Minerals   int `json:"minerals"    yaml:"minerals"`
	Gas        int `json:"gas"         yaml:"gas"`
	Larvae     int `json:"larvae"      yaml:"larvae"`
}

// Supply thresholds for a supply block.
const (
	MaxSupply          = 200
	blockedSupplySlack = 2
)

// SupplyBlocked reports whether the player had less than two free supply
// while below the supply maximum.
func (s Sample) SupplyBlocked() bool {
	return s.SupplyCap < MaxSupply && s.SupplyCap-s.SupplyUsed < blockedSupplySlack
}

// Tracker follows larvae and eggs through the registry and samples them on
// every player-stats event of the tracked player.
type Tracker struct {
	owner    track.Owner
	units    *registry.Registry
	samples  []Sample
	produced int
	logger   *slog.Logger
}

// New creates a larvae tracker for a player.
func New(owner track.Owner, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		owner:  owner,
		units:  registry.New(),
		logger: logger.With("tracker", string(track.KindLarvae), "player", owner.Name),
	}
}

// Kind implements track.Tracker.
func (t *Tracker) Kind() track.Kind { return track.KindLarvae }

// Title implements track.Tracker.
func (t *Tracker) Title() string { return "Larvae vs Resources" }

// Player implements track.Tracker.
func (t *Tracker) Player() string { return t.owner.Name }

// Samples returns the recorded ticks in time order.
func (t *Tracker) Samples() []Sample { return t.samples }

// LarvaeProduced counts every larva that came into existence, hatched from
// the hatchery or returned from an egg.
func (t *Tracker) LarvaeProduced() int { return t.produced }

// Consume implements track.Consumer.
func (t *Tracker) Consume(ev replay.Event) error {
	switch e := ev.(type) {
	case replay.PlayerStats:
		if t.owner.Owns(e.Player) {
			t.samples = append(t.samples, Sample{
				Time:       e.Time,
				SupplyUsed: int(e.SupplyUsed + 0.5),
				SupplyCap:  int(e.SupplyCap),
				Minerals:   e.Minerals,
				Gas:        e.Vespene,
				Larvae:     t.units.Count(replay.UnitLarva),
			})
		}
	case replay.UnitTypeChange:
		if t.owner.Owns(e.Unit.Owner) {
			return t.typeChange(e)
		}
	case replay.UnitBorn:
		if t.owner.Owns(e.Unit.Owner) {
			if e.Unit.Name == replay.UnitLarva {
				t.produced++
			}

			return t.units.Add(e.Unit.ID, e.Unit.Name)
		}
	case replay.UnitDied:
		if t.owner.Owns(e.Unit.Owner) {
			return t.units.Remove(e.Unit.ID, e.Unit.Name)
		}
	case replay.UnitDone, replay.TargetUnitCommand, replay.PlayerLeave, replay.UpgradeComplete:
	}

	return nil
}

func (t *Tracker) typeChange(e replay.UnitTypeChange) error {
	switch {
	case e.NewType == replay.UnitLarva:
		// An egg that finishes hatching turns back into a larva before it dies.
		t.produced++

		return t.units.Move(e.Unit.ID, replay.UnitEgg, replay.UnitLarva)
	case e.NewType == replay.UnitEgg:
		if e.Unit.Name == replay.UnitEgg {
			t.logger.Debug("ignoring egg to egg type change", "unit", e.Unit.ID, "time", e.Time)

			return nil
		}

		return t.units.Move(e.Unit.ID, replay.UnitLarva, replay.UnitEgg)
	case e.Unit.Name == e.NewType:
		return nil
	default:
		// Other morphs (Overlord to Overseer, cocoons) keep the registry in
		// step with the name the unit will die under.
		return t.relabel(e)
	}
}

func (t *Tracker) relabel(e replay.UnitTypeChange) error {
	if !registry.IsUnhandled(e.Unit.Name) && !t.units.Contains(e.Unit.ID, e.Unit.Name) {
		// Morph of a unit that was never born for us (e.g. a structure
		// placed from a drone). Start tracking it under its new name.
		return t.units.Add(e.Unit.ID, e.NewType)
	}

	return t.units.Move(e.Unit.ID, e.Unit.Name, e.NewType)
}

package analysis

import (
	"log/slog"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/injects"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/larvae"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/upgrades"
)

// Set is the group of trackers following one player.
type Set struct {
	Player   replay.Player
	Larvae   *larvae.Tracker
	Drones   *drones.Tracker
	Injects  *injects.Tracker
	Upgrades *upgrades.Tracker
}

// NewSet builds the trackers for player.
func NewSet(player replay.Player, opts Options, logger *slog.Logger) *Set {
	owner := track.NewOwner(player.Name, opts.Match)
	curve := opts.Curve

	if curve == (drones.TargetCurve{}) {
		curve = drones.DefaultTargetCurve()
	}

	return &Set{
		Player:   player,
		Larvae:   larvae.New(owner, logger),
		Drones:   drones.New(owner, curve),
		Injects:  injects.New(owner, opts.InjectDuration, logger),
		Upgrades: upgrades.New(owner),
	}
}

// Primary returns the trackers with a timeline of their own, in display
// order.
func (s *Set) Primary() []track.Tracker {
	return []track.Tracker{s.Larvae, s.Drones, s.Injects}
}

// Subsidiary returns the overlay-only trackers.
func (s *Set) Subsidiary() []track.Subsidiary {
	return []track.Subsidiary{s.Upgrades}
}

// Consumers returns every tracker of the set in delivery order.
func (s *Set) Consumers() []track.Consumer {
	return []track.Consumer{s.Larvae, s.Drones, s.Injects, s.Upgrades}
}

// Package drones tracks a player's worker count and compares it with a
// benchmark target curve.
//
// A drone morphing into a structure keeps counting until its death event
// arrives, and a drone that dies burrowed is never removed. Both leave a
// small overcount.
package drones

import (
	"github.com/Sumatoshi-tech/skilltracker/pkg/registry"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// Sample is the worker count right after a worker was born or died.
type Sample struct {
	Time   int `json:"time"   yaml:"time"`
	Drones int `json:"drones" yaml:"drones"`
}

// Tracker counts the tracked player's drones.
type Tracker struct {
	owner   track.Owner
	curve   TargetCurve
	units   *registry.Registry
	samples []Sample
}

// New creates a drone tracker.
func New(owner track.Owner, curve TargetCurve) *Tracker {
	return &Tracker{owner: owner, curve: curve, units: registry.New()}
}

// Kind implements track.Tracker.
func (t *Tracker) Kind() track.Kind { return track.KindDrones }

// Title implements track.Tracker.
func (t *Tracker) Title() string { return "Drones" }

// Player implements track.Tracker.
func (t *Tracker) Player() string { return t.owner.Name }

// Samples returns one sample per worker birth or death.
func (t *Tracker) Samples() []Sample { return t.samples }

// Curve returns the benchmark the tracker is compared against.
func (t *Tracker) Curve() TargetCurve { return t.curve }

// Count returns the current number of drones.
func (t *Tracker) Count() int { return t.units.Count(replay.UnitDrone) }

// Consume implements track.Consumer.
func (t *Tracker) Consume(ev replay.Event) error {
	switch e := ev.(type) {
	case replay.UnitBorn:
		if e.Unit.Name == replay.UnitDrone && t.owner.Owns(e.Unit.Owner) {
			err := t.units.Add(e.Unit.ID, replay.UnitDrone)
			if err != nil {
				return err
			}

			t.record(e.Time)
		}
	case replay.UnitDied:
		if e.Unit.Name == replay.UnitDrone && t.owner.Owns(e.Unit.Owner) {
			err := t.units.Remove(e.Unit.ID, replay.UnitDrone)
			if err != nil {
				return err
			}

			t.record(e.Time)
		}
	case replay.UnitDone, replay.UnitTypeChange, replay.PlayerStats, replay.TargetUnitCommand,
		replay.PlayerLeave, replay.UpgradeComplete:
	}

	return nil
}

func (t *Tracker) record(sec int) {
	t.samples = append(t.samples, Sample{Time: sec, Drones: t.Count()})
}

// CountAt returns the drone count in effect at a game second, or -1 before
// the first sample.
func (t *Tracker) CountAt(sec int) int {
	count := -1

	for _, s := range t.samples {
		if s.Time > sec {
			break
		}

		count = s.Drones
	}

	return count
}

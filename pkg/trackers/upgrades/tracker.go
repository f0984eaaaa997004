// Package upgrades records completed Zerg attack and armor upgrades so they
// can be marked on other trackers' charts.
package upgrades

import (
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// labels maps the upgrades of interest to display names.
var labels = map[string]string{
	"ZergMissileWeaponsLevel1": "Ground Range 1",
	"ZergMissileWeaponsLevel2": "Ground Range 2",
	"ZergMissileWeaponsLevel3": "Ground Range 3",
	"ZergMeleeWeaponsLevel1":   "Melee 1",
	"ZergMeleeWeaponsLevel2":   "Melee 2",
	"ZergMeleeWeaponsLevel3":   "Melee 3",
	"ZergGroundArmorsLevel1":   "Ground Carapace 1",
	"ZergGroundArmorsLevel2":   "Ground Carapace 2",
	"ZergGroundArmorsLevel3":   "Ground Carapace 3",
	"ZergFlyerWeaponsLevel1":   "Air Attack 1",
	"ZergFlyerWeaponsLevel2":   "Air Attack 2",
	"ZergFlyerWeaponsLevel3":   "Air Attack 3",
	"ZergFlyerArmorsLevel1":    "Air Carapace 1",
	"ZergFlyerArmorsLevel2":    "Air Carapace 2",
	"ZergFlyerArmorsLevel3":    "Air Carapace 3",
}

// LabelOf returns the display name of an upgrade of interest.
func LabelOf(upgrade string) (string, bool) {
	label, ok := labels[upgrade]

	return label, ok
}

// Sample is one completed upgrade.
type Sample struct {
	Time  int    `json:"time"  yaml:"time"`
	Name  string `json:"name"  yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// Tracker collects upgrade completions. It has no chart of its own.
type Tracker struct {
	owner   track.Owner
	samples []Sample
}

// New creates an upgrade tracker.
func New(owner track.Owner) *Tracker {
	return &Tracker{owner: owner}
}

// Kind implements track.Tracker.
func (t *Tracker) Kind() track.Kind { return track.KindUpgrades }

// Title implements track.Tracker.
func (t *Tracker) Title() string { return "Upgrades" }

// Player implements track.Tracker.
func (t *Tracker) Player() string { return t.owner.Name }

// Samples returns the completed upgrades in order.
func (t *Tracker) Samples() []Sample { return t.samples }

// CanShareWith reports whether upgrades can be drawn over other's chart.
// Only the drone chart has a per-second axis worth marking.
func (t *Tracker) CanShareWith(other track.Tracker) bool {
	return other.Kind() == track.KindDrones
}

// Consume implements track.Consumer.
func (t *Tracker) Consume(ev replay.Event) error {
	e, ok := ev.(replay.UpgradeComplete)
	if !ok || !t.owner.Owns(e.Player) {
		return nil
	}

	if label, known := labels[e.Upgrade]; known {
		t.samples = append(t.samples, Sample{Time: e.Time, Name: e.Upgrade, Label: label})
	}

	return nil
}

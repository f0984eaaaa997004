// Package report turns an analysis result into a serializable report and
// writes it as JSON, YAML, console text or an HTML chart page.
package report

import (
	"fmt"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/injects"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/larvae"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/upgrades"
)

// Report is the serializable outcome of one replay.
type Report struct {
	Replay          string   `json:"replay"           yaml:"replay"`
	Map             string   `json:"map"              yaml:"map"`
	RequestedCutoff string   `json:"requested_cutoff" yaml:"requested_cutoff"`
	Cutoff          int      `json:"cutoff"           yaml:"cutoff"`
	CutoffClock     string   `json:"cutoff_clock"     yaml:"cutoff_clock"`
	PlayerLeft      bool     `json:"player_left"      yaml:"player_left"`
	Events          int      `json:"events"           yaml:"events"`
	Players         []Player `json:"players"          yaml:"players"`
}

// Player holds the timelines of one tracked player.
type Player struct {
	Name           string             `json:"name"            yaml:"name"`
	Race           string             `json:"race"            yaml:"race"`
	LarvaeProduced int                `json:"larvae_produced" yaml:"larvae_produced"`
	Larvae         []larvae.Sample    `json:"larvae"          yaml:"larvae"`
	Drones         []drones.Sample    `json:"drones"          yaml:"drones"`
	DroneTarget    drones.TargetCurve `json:"drone_target"    yaml:"drone_target"`
	Injects        []injects.Sample   `json:"injects"         yaml:"injects"`
	Hatcheries     []injects.History  `json:"hatcheries"      yaml:"hatcheries"`
	Upgrades       []upgrades.Sample  `json:"upgrades"        yaml:"upgrades"`
}

// Build assembles the report of an analysis result.
func Build(res *analysis.Result) (*Report, error) {
	rep := &Report{
		Replay:          res.Path,
		Map:             res.Map,
		RequestedCutoff: res.Requested.String(),
		Cutoff:          res.Cutoff,
		CutoffClock:     replay.GameTimestamp(res.Cutoff),
		PlayerLeft:      res.Left,
		Events:          res.Delivered,
		Players:         make([]Player, 0, len(res.Sets)),
	}

	for _, set := range res.Sets {
		histories, err := set.Injects.Histories(res.Cutoff)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", set.Player.Name, err)
		}

		rep.Players = append(rep.Players, Player{
			Name:           set.Player.Name,
			Race:           set.Player.Race,
			LarvaeProduced: set.Larvae.LarvaeProduced(),
			Larvae:         set.Larvae.Samples(),
			Drones:         set.Drones.Samples(),
			DroneTarget:    set.Drones.Curve(),
			Injects:        set.Injects.Samples(),
			Hatcheries:     histories,
			Upgrades:       set.Upgrades.Samples(),
		})
	}

	return rep, nil
}

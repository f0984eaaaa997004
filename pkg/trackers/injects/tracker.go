// Package injects reconstructs when each of a player's hatcheries was under
// the effect of a queen's inject and summarizes the coverage.
//
// Injects are tracked by the command issued, not by the effect landing. A
// queen that walks to the hatchery shifts idle time from before the inject
// to after it; a diverted or killed queen still counts.
package injects

import (
	"log/slog"
	"sort"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// DefaultDuration is the inject effect length in game seconds.
const DefaultDuration = 40

// Interval is a half-open [Start, End) span of game seconds.
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Duration returns End-Start.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Sample is one accepted inject command.
type Sample struct {
	Time       int      `json:"time"        yaml:"time"`
	HatcheryID int64    `json:"hatchery_id" yaml:"hatchery_id"`
	Interval   Interval `json:"interval"    yaml:"interval"`
}

type hatchery struct {
	id        int64
	created   int
	destroyed *int
	injects   []Interval
}

// Tracker follows every hatchery-class structure of the tracked player.
type Tracker struct {
	owner      track.Owner
	duration   int
	hatcheries map[int64]*hatchery
	order      []*hatchery
	firstQueen *int
	leftAt     *int
	samples    []Sample
	logger     *slog.Logger
}

// New creates an inject tracker. A non-positive duration selects
// DefaultDuration.
func New(owner track.Owner, duration int, logger *slog.Logger) *Tracker {
	if duration <= 0 {
		duration = DefaultDuration
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		owner:      owner,
		duration:   duration,
		hatcheries: make(map[int64]*hatchery),
		logger:     logger.With("tracker", string(track.KindInjects), "player", owner.Name),
	}
}

// Kind implements track.Tracker.
func (t *Tracker) Kind() track.Kind { return track.KindInjects }

// Title implements track.Tracker.
func (t *Tracker) Title() string { return "Injects" }

// Player implements track.Tracker.
func (t *Tracker) Player() string { return t.owner.Name }

// Samples returns the accepted inject commands in order.
func (t *Tracker) Samples() []Sample { return t.samples }

// FirstQueen returns when the player's first queen was born.
func (t *Tracker) FirstQueen() (int, bool) {
	if t.firstQueen == nil {
		return 0, false
	}

	return *t.firstQueen, true
}

// LeftAt returns when a player left the game.
func (t *Tracker) LeftAt() (int, bool) {
	if t.leftAt == nil {
		return 0, false
	}

	return *t.leftAt, true
}

// HatcheryCount returns the number of hatcheries seen.
func (t *Tracker) HatcheryCount() int {
	return len(t.order)
}

func isHatchery(name string) bool {
	return name == replay.UnitHatchery || name == replay.UnitLair || name == replay.UnitHive
}

// Consume implements track.Consumer.
func (t *Tracker) Consume(ev replay.Event) error {
	switch e := ev.(type) {
	case replay.UnitBorn:
		t.sighted(e.Unit, e.Time)

		if e.Unit.Name == replay.UnitQueen && t.firstQueen == nil && t.owner.Owns(e.Unit.Owner) {
			sec := e.Time
			t.firstQueen = &sec
		}
	case replay.UnitDone:
		t.sighted(e.Unit, e.Time)
	case replay.UnitDied:
		t.died(e)
	case replay.TargetUnitCommand:
		t.inject(e)
	case replay.PlayerLeave:
		if t.leftAt == nil {
			sec := e.Time
			t.leftAt = &sec
		}
	case replay.UnitTypeChange, replay.PlayerStats, replay.UpgradeComplete:
	}

	return nil
}

// sighted records a hatchery the first time it is seen. The id survives
// the Hatchery -> Lair -> Hive chain, so later sightings are not creations.
func (t *Tracker) sighted(u replay.Unit, sec int) {
	if !isHatchery(u.Name) || !t.owner.Owns(u.Owner) {
		return
	}

	if _, ok := t.hatcheries[u.ID]; ok {
		return
	}

	rec := &hatchery{id: u.ID, created: sec}
	t.hatcheries[u.ID] = rec
	t.order = append(t.order, rec)
}

func (t *Tracker) died(e replay.UnitDied) {
	if !isHatchery(e.Unit.Name) || !t.owner.Owns(e.Unit.Owner) {
		return
	}

	rec, ok := t.hatcheries[e.Unit.ID]
	if !ok {
		// Cancelled or never finished.
		t.logger.Debug("death of unrecorded hatchery", "unit", e.Unit.ID, "time", e.Time)

		return
	}

	if rec.destroyed == nil {
		sec := e.Time
		rec.destroyed = &sec
	}
}

func (t *Tracker) inject(e replay.TargetUnitCommand) {
	if e.Ability != replay.AbilitySpawnLarva || !t.owner.Owns(e.Player) {
		return
	}

	rec, ok := t.hatcheries[e.TargetID]
	if !ok || rec.destroyed != nil {
		return
	}

	start := e.Time
	if n := len(rec.injects); n > 0 && e.Time < rec.injects[n-1].End {
		// Queued behind the active inject.
		start = rec.injects[n-1].End
	}

	iv := Interval{Start: start, End: start + t.duration}
	rec.injects = append(rec.injects, iv)
	t.samples = append(t.samples, Sample{Time: e.Time, HatcheryID: rec.id, Interval: iv})
}

// sorted orders hatcheries by creation, ties by arrival.
func (t *Tracker) sorted() []*hatchery {
	out := make([]*hatchery, len(t.order))
	copy(out, t.order)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].created < out[j].created
	})

	return out
}

// History returns the coverage of the index-th hatchery by creation time.
func (t *Tracker) History(index, cutoff int) (History, error) {
	sorted := t.sorted()
	if index < 0 || index >= len(sorted) {
		return History{}, ErrNoHatchery
	}

	return historyOf(sorted[index], t.firstQueen, cutoff)
}

// Histories returns the coverage of every hatchery ordered by creation.
func (t *Tracker) Histories(cutoff int) ([]History, error) {
	sorted := t.sorted()
	out := make([]History, 0, len(sorted))

	for _, rec := range sorted {
		h, err := historyOf(rec, t.firstQueen, cutoff)
		if err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, nil
}

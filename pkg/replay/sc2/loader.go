// Package sc2 reads StarCraft II replay files with s2prot and converts their
// tracker and game events into the replay event model.
package sc2

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/icza/s2prot/rep"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// ErrNoTrackerEvents is returned for replays recorded before tracker events
// existed.
var ErrNoTrackerEvents = errors.New("replay has no tracker events")

// Options configures a Loader.
type Options struct {
	// SpawnLarvaAbilities lists the ability link ids that decode to the
	// queen's inject. Replays carry link ids only and they move between
	// game builds.
	SpawnLarvaAbilities []int64
}

// DefaultSpawnLarvaAbilities returns the inject ability link ids of recent
// game builds.
func DefaultSpawnLarvaAbilities() []int64 {
	return []int64{110, 111}
}

// Loader implements replay.Loader on top of s2prot.
type Loader struct {
	logger    *slog.Logger
	abilities map[int64]string
}

// NewLoader creates a Loader. A nil logger uses slog.Default.
func NewLoader(opts Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	ids := opts.SpawnLarvaAbilities
	if len(ids) == 0 {
		ids = DefaultSpawnLarvaAbilities()
	}

	abilities := make(map[int64]string, len(ids))
	for _, id := range ids {
		abilities[id] = replay.AbilitySpawnLarva
	}

	return &Loader{logger: logger, abilities: abilities}
}

var _ replay.Loader = (*Loader)(nil)

// Load implements replay.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*replay.Replay, error) {
	return l.open(ctx, path, true)
}

// Info implements replay.Loader.
func (l *Loader) Info(ctx context.Context, path string) (*replay.Replay, error) {
	return l.open(ctx, path, false)
}

func (l *Loader) open(ctx context.Context, path string, withEvents bool) (*replay.Replay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := rep.NewFromFileEvts(path, withEvents, false, true)
	if err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", path, err)
	}
	defer r.Close()

	if r.TrackerEvts == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTrackerEvents, path)
	}

	all := playerList(r.Details.Struct)
	inferRaces(all, r.TrackerEvts.Evts)

	out := &replay.Replay{
		Path:    path,
		Map:     r.Details.Struct.Stringv("title"),
		Players: reportingPlayers(all, r.TrackerEvts.Evts),
	}

	if !withEvents {
		return out, nil
	}

	users := userNames(all, r.Details.Struct, r.InitData.Struct)
	dec := newDecoder(all, users, l.abilities, l.logger)
	out.Events = dec.decode(merge(r.GameEvts, r.TrackerEvts.Evts))

	l.logger.DebugContext(ctx, "replay decoded",
		"path", path, "map", out.Map, "events", len(out.Events))

	return out, nil
}

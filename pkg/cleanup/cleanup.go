// Package cleanup finds replays that are not ladder 1v1 games: co-op
// missions, games with other than two players, games against the A.I.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// Reason says why a replay is deleted.
type Reason string

// Deletion reasons.
const (
	ReasonWriteCacheBackup Reason = "write_cache_backup"
	ReasonCoop             Reason = "coop"
	ReasonNotOneVsOne      Reason = "not_1v1"
	ReasonVsAI             Reason = "vs_ai"
)

const (
	writeCacheBackupSuffix = ".writeCacheBackup"
	aiNamePrefix           = "A.I. 1"
	ladderPlayers          = 2
)

// CoopMaps are the co-op mission names. A replay whose file name or map
// title contains one is a co-op game.
var CoopMaps = []string{
	"Void Thrashing", "Void Launch", "Oblivion Express", "Rifts to Korhal", "Temple of the Past",
	"Lock & Load", "Chain of Ascension", "The Vermillion Problem", "Mist Opportunities", "Miner Evacuation",
	"Dead of Night", "Scythe of Amon", "Part and Parcel", "Malwarfare", "Cradle of Death",
}

// InfoReader reads replay headers.
type InfoReader interface {
	Info(ctx context.Context, path string) (*replay.Replay, error)
}

// Verdict is the classification of one replay marked for deletion.
type Verdict struct {
	File   replay.File `json:"file"   yaml:"file"`
	Reason Reason      `json:"reason" yaml:"reason"`
	Detail string      `json:"detail" yaml:"detail"`
}

// Options controls a cleanup run.
type Options struct {
	// DryRun reports what would be deleted without deleting.
	DryRun bool
	// Limit caps how many replays are inspected, newest first. Zero means all.
	Limit int
	// Progress, when set, is called after every inspected replay.
	Progress func(inspected, total int)
}

// Summary is the outcome of a run.
type Summary struct {
	Inspected int
	Deleted   []Verdict
	// Unreadable replays are kept.
	Unreadable []string
}

// Cleaner classifies and deletes replays.
type Cleaner struct {
	reader InfoReader
	logger *slog.Logger
}

// New creates a Cleaner.
func New(reader InfoReader, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cleaner{reader: reader, logger: logger}
}

func coopName(text string) (string, bool) {
	for _, name := range CoopMaps {
		if strings.Contains(text, name) {
			return name, true
		}
	}

	return "", false
}

// Classify returns the verdict for f, or ok=false when it should be kept.
func (c *Cleaner) Classify(ctx context.Context, f replay.File) (Verdict, bool, error) {
	if strings.HasSuffix(f.Path, writeCacheBackupSuffix) {
		return Verdict{File: f, Reason: ReasonWriteCacheBackup}, true, nil
	}

	if name, ok := coopName(f.Path); ok {
		return Verdict{File: f, Reason: ReasonCoop, Detail: name}, true, nil
	}

	info, err := c.reader.Info(ctx, f.Path)
	if err != nil {
		return Verdict{}, false, fmt.Errorf("classify %s: %w", f.Name, err)
	}

	if name, ok := coopName(info.Map); ok {
		return Verdict{File: f, Reason: ReasonCoop, Detail: name}, true, nil
	}

	if len(info.Players) != ladderPlayers {
		return Verdict{File: f, Reason: ReasonNotOneVsOne, Detail: fmt.Sprintf("%d players", len(info.Players))}, true, nil
	}

	for _, p := range info.Players {
		if p.AI || strings.HasPrefix(p.Name, aiNamePrefix) {
			return Verdict{File: f, Reason: ReasonVsAI, Detail: p.Name}, true, nil
		}
	}

	return Verdict{}, false, nil
}

// Run classifies files in the given order and deletes the marked ones.
func (c *Cleaner) Run(ctx context.Context, files []replay.File, opts Options) (Summary, error) {
	if opts.Limit > 0 && opts.Limit < len(files) {
		files = files[:opts.Limit]
	}

	var sum Summary

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		verdict, remove, err := c.Classify(ctx, f)
		sum.Inspected++

		switch {
		case err != nil:
			c.logger.WarnContext(ctx, "unreadable replay kept", "path", f.Path, "error", err)
			sum.Unreadable = append(sum.Unreadable, f.Path)
		case remove:
			if !opts.DryRun {
				if err := os.Remove(f.Path); err != nil {
					return sum, fmt.Errorf("delete %s: %w", f.Name, err)
				}
			}

			c.logger.InfoContext(ctx, "replay marked for deletion",
				"path", f.Path, "reason", string(verdict.Reason), "detail", verdict.Detail, "dry_run", opts.DryRun)
			sum.Deleted = append(sum.Deleted, verdict)
		}

		if opts.Progress != nil {
			opts.Progress(sum.Inspected, len(files))
		}
	}

	return sum, nil
}

package cleanup_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/cleanup"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

var errCorrupt = errors.New("corrupt replay")

type fakeReader map[string]*replay.Replay

func (f fakeReader) Info(_ context.Context, path string) (*replay.Replay, error) {
	r, ok := f[filepath.Base(path)]
	if !ok {
		return nil, errCorrupt
	}

	return r, nil
}

func players(names ...string) []replay.Player {
	out := make([]replay.Player, len(names))
	for i, n := range names {
		out[i] = replay.Player{Name: n, Race: "Zerg", ID: i + 1}
	}

	return out
}

func reader() fakeReader {
	return fakeReader{
		"ladder.SC2Replay":  {Map: "Alcyone LE", Players: players("Serral", "Clem")},
		"ffa.SC2Replay":     {Map: "Alcyone LE", Players: players("Serral", "Clem", "Dark")},
		"ai.SC2Replay":      {Map: "Alcyone LE", Players: players("Serral", "A.I. 1 (Elite)")},
		"flagged.SC2Replay": {Map: "Alcyone LE", Players: []replay.Player{{Name: "Serral"}, {Name: "Bot", AI: true}}},
		"mission.SC2Replay": {Map: "Dead of Night", Players: players("Serral", "Clem")},
	}
}

func newCleaner(r fakeReader) *cleanup.Cleaner {
	return cleanup.New(r, slog.New(slog.DiscardHandler))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		reason cleanup.Reason
		remove bool
	}{
		{"ladder game kept", "ladder.SC2Replay", "", false},
		{"co-op by file name", "Void Launch (3).SC2Replay", cleanup.ReasonCoop, true},
		{"co-op by map title", "mission.SC2Replay", cleanup.ReasonCoop, true},
		{"three players", "ffa.SC2Replay", cleanup.ReasonNotOneVsOne, true},
		{"named A.I.", "ai.SC2Replay", cleanup.ReasonVsAI, true},
		{"computer slot", "flagged.SC2Replay", cleanup.ReasonVsAI, true},
		{"write cache leftover", "x.SC2Replay.writeCacheBackup", cleanup.ReasonWriteCacheBackup, true},
	}

	c := newCleaner(reader())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, remove, err := c.Classify(context.Background(), replay.File{Path: "/replays/" + tt.file, Name: tt.file})
			require.NoError(t, err)
			assert.Equal(t, tt.remove, remove)
			assert.Equal(t, tt.reason, v.Reason)
		})
	}
}

func TestClassify_Unreadable(t *testing.T) {
	t.Parallel()

	_, remove, err := newCleaner(reader()).Classify(context.Background(), replay.File{Path: "broken.SC2Replay"})
	require.ErrorIs(t, err, errCorrupt)
	assert.False(t, remove)
}

func writeReplays(t *testing.T, names ...string) []replay.File {
	t.Helper()

	dir := t.TempDir()

	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("replay"), 0o600))
	}

	files, err := replay.ListReplays(dir)
	require.NoError(t, err)

	return files
}

func TestRun_DryRunKeepsFiles(t *testing.T) {
	t.Parallel()

	files := writeReplays(t, "ladder.SC2Replay", "ai.SC2Replay", "broken.SC2Replay")

	var progress []int

	sum, err := newCleaner(reader()).Run(context.Background(), files, cleanup.Options{
		DryRun:   true,
		Progress: func(inspected, _ int) { progress = append(progress, inspected) },
	})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Inspected)
	require.Len(t, sum.Deleted, 1)
	assert.Equal(t, cleanup.ReasonVsAI, sum.Deleted[0].Reason)
	assert.Len(t, sum.Unreadable, 1)
	assert.Equal(t, []int{1, 2, 3}, progress)

	for _, f := range files {
		assert.FileExists(t, f.Path)
	}
}

func TestRun_Deletes(t *testing.T) {
	t.Parallel()

	files := writeReplays(t, "ladder.SC2Replay", "ffa.SC2Replay", "Void Launch.SC2Replay")

	sum, err := newCleaner(reader()).Run(context.Background(), files, cleanup.Options{})
	require.NoError(t, err)
	assert.Len(t, sum.Deleted, 2)

	remaining, err := replay.ListReplays(filepath.Dir(files[0].Path))
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "ladder.SC2Replay", remaining[0].Name)
}

func TestRun_Limit(t *testing.T) {
	t.Parallel()

	files := []replay.File{
		{Path: "ladder.SC2Replay"},
		{Path: "ffa.SC2Replay"},
	}

	sum, err := newCleaner(reader()).Run(context.Background(), files, cleanup.Options{DryRun: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inspected)
	assert.Empty(t, sum.Deleted)
}

package trendcache_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/trendcache"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trends"
)

func open(t *testing.T, dir string) *trendcache.Store {
	t.Helper()

	store, err := trendcache.Open(dir, nil)
	require.NoError(t, err)

	return store
}

func key(path string) trends.Key {
	return trends.Key{
		Path:    path,
		Size:    1024,
		ModTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Player:  "Serral",
		Cutoff:  588,
	}
}

func TestStore_RoundTripAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entry := trends.Entry{Accepted: true, Values: map[string]float64{trends.MetricLarvaSpending: 2.5}}

	store := open(t, dir)
	require.NoError(t, store.Put(key("a.SC2Replay"), entry))
	require.NoError(t, store.Put(key("b.SC2Replay"), trends.Entry{}))
	require.NoError(t, store.Close())

	store = open(t, dir)
	defer store.Close()

	got, ok, err := store.Get(key("a.SC2Replay"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, got)

	rejected, ok, err := store.Get(key("b.SC2Replay"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, rejected.Accepted)

	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_ChangedFileMisses(t *testing.T) {
	t.Parallel()

	store := open(t, t.TempDir())
	defer store.Close()

	require.NoError(t, store.Put(key("a.SC2Replay"), trends.Entry{Accepted: true}))

	changed := key("a.SC2Replay")
	changed.ModTime = changed.ModTime.Add(time.Nanosecond)

	otherCutoff := key("a.SC2Replay")
	otherCutoff.Cutoff = 420

	for _, k := range []trends.Key{changed, otherCutoff} {
		_, ok, err := store.Get(k)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := open(t, t.TempDir())
	defer store.Close()

	require.NoError(t, store.Put(key("a.SC2Replay"), trends.Entry{Accepted: true}))
	require.NoError(t, store.Clear())

	n, err := store.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_Closed(t *testing.T) {
	t.Parallel()

	store, err := trendcache.Open(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, _, err = store.Get(key("a.SC2Replay"))
	require.ErrorIs(t, err, trendcache.ErrClosed)
	require.ErrorIs(t, store.Put(key("a.SC2Replay"), trends.Entry{}), trendcache.ErrClosed)
}

func TestEncodeKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "trend:v1:a.SC2Replay|1024|1772366400000000000|Serral|588",
		string(trendcache.EncodeKey(key("a.SC2Replay"))))
}

package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

func TestCanonicalRace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Zerg", want: replay.RaceZerg},
		{in: "zerg", want: replay.RaceZerg},
		{in: "Zergi", want: replay.RaceZerg},
		{in: "Зерг", want: replay.RaceZerg},
		{in: "저그", want: replay.RaceZerg},
		{in: "异虫", want: replay.RaceZerg},
		{in: "蟲族", want: replay.RaceZerg},
		{in: "Terraner", want: replay.RaceTerran},
		{in: "Протосс", want: replay.RaceProtoss},
		{in: "Random", want: "Random"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, replay.CanonicalRace(tt.in))
		})
	}
}

func TestPlayer_IsZergLocalized(t *testing.T) {
	t.Parallel()

	assert.True(t, replay.Player{Race: "Zergi"}.IsZerg())
	assert.True(t, replay.Player{Race: "Зерг"}.IsZerg())
	assert.True(t, replay.Player{Race: "ZERG"}.IsZerg())
	assert.False(t, replay.Player{Race: "Terranie"}.IsZerg())
	assert.False(t, replay.KnownRace("Зерги"))
	assert.True(t, replay.KnownRace(replay.RaceZerg))
}

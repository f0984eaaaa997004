package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{in: "7:00", want: 588},
		{in: "07:30", want: 630},
		{in: "5:00", want: 420},
		{in: "0:10", want: 14},
		{in: "1:05", want: 91},
		{in: "0:00", want: 0},
	}

	for _, tt := range tests {
		got, err := replay.ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "700", "7:00:00", "a:10", "7:b", "-1:00"} {
		_, err := replay.ParseTimestamp(in)
		require.ErrorIs(t, err, replay.ErrInvalidTimestamp, in)
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00:00", replay.Timestamp(0))
	assert.Equal(t, "01:05", replay.Timestamp(65.9))
	assert.Equal(t, "12:00", replay.Timestamp(720))
}

func TestGameRealConversion(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 140.0, replay.GameSeconds(100), 1e-9)
	assert.InDelta(t, 100.0, replay.RealSeconds(140), 1e-9)
	assert.Equal(t, "07:00", replay.GameTimestamp(588))
}

func TestPlayer_IsZerg(t *testing.T) {
	t.Parallel()

	assert.True(t, replay.Player{Race: "Zerg"}.IsZerg())
	assert.True(t, replay.Player{Race: "zerg"}.IsZerg())
	assert.False(t, replay.Player{Race: "Terran"}.IsZerg())
}

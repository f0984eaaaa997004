package track

import "github.com/Sumatoshi-tech/skilltracker/pkg/replay"

// Cutoff bounds consumption in game seconds. The zero value is the natural
// end of the game.
type Cutoff struct {
	seconds int
	bounded bool
}

// Natural consumes the whole stream.
func Natural() Cutoff {
	return Cutoff{}
}

// At stops consumption after game second sec.
func At(sec int) Cutoff {
	return Cutoff{seconds: sec, bounded: true}
}

// Bounded reports whether the cutoff limits consumption.
func (c Cutoff) Bounded() bool {
	return c.bounded
}

// Seconds returns the bound. Meaningless when the cutoff is natural.
func (c Cutoff) Seconds() int {
	return c.seconds
}

// Allows reports whether an event at second t lies within the cutoff.
func (c Cutoff) Allows(t int) bool {
	return !c.bounded || t <= c.seconds
}

// Floor clamps a bounded cutoff down to a multiple of step.
func (c Cutoff) Floor(step int) Cutoff {
	if !c.bounded || step <= 0 {
		return c
	}

	return At(c.seconds - c.seconds%step)
}

func (c Cutoff) String() string {
	if !c.bounded {
		return "end"
	}

	return replay.GameTimestamp(c.seconds)
}

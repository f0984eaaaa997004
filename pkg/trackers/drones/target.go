package drones

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

const secondsPerMinute = 60

// ErrInvalidCurve is returned for target curves whose breakpoints are not
// ordered.
var ErrInvalidCurve = errors.New("invalid drone target curve")

// TargetCurve is the benchmark worker count: a steep ramp from StartCount
// to RampEndCount over the first RampEndSeconds, then PerMinute workers per
// minute until CapCount is reached at CapSeconds. Breakpoints are in real
// (wall-clock) seconds.
type TargetCurve struct {
	StartCount     float64 `json:"start_count"      yaml:"start_count"      mapstructure:"start_count"`
	RampEndSeconds float64 `json:"ramp_end_seconds" yaml:"ramp_end_seconds" mapstructure:"ramp_end_seconds"`
	RampEndCount   float64 `json:"ramp_end_count"   yaml:"ramp_end_count"   mapstructure:"ramp_end_count"`
	PerMinute      float64 `json:"per_minute"       yaml:"per_minute"       mapstructure:"per_minute"`
	CapSeconds     float64 `json:"cap_seconds"      yaml:"cap_seconds"      mapstructure:"cap_seconds"`
	CapCount       float64 `json:"cap_count"        yaml:"cap_count"        mapstructure:"cap_count"`
}

// DefaultTargetCurve returns 13 drones at 0:00, 22 at 2:12, 80 at 8:00.
func DefaultTargetCurve() TargetCurve {
	return TargetCurve{
		StartCount:     13,
		RampEndSeconds: 132,
		RampEndCount:   22,
		PerMinute:      10,
		CapSeconds:     480,
		CapCount:       80,
	}
}

// Validate checks that the breakpoints are ordered.
func (c TargetCurve) Validate() error {
	switch {
	case c.RampEndSeconds <= 0:
		return fmt.Errorf("%w: ramp end must be positive, got %v", ErrInvalidCurve, c.RampEndSeconds)
	case c.CapSeconds < c.RampEndSeconds:
		return fmt.Errorf("%w: cap at %vs precedes ramp end at %vs", ErrInvalidCurve, c.CapSeconds, c.RampEndSeconds)
	case c.PerMinute < 0:
		return fmt.Errorf("%w: negative rate %v", ErrInvalidCurve, c.PerMinute)
	}

	return nil
}

// At returns the target count at a game second. Real time is taken in
// whole seconds, as shown on the game clock.
func (c TargetCurve) At(gameSecond int) float64 {
	elapsed := math.Floor(replay.RealSeconds(float64(gameSecond)))

	switch {
	case elapsed >= c.CapSeconds:
		return c.CapCount
	case elapsed < c.RampEndSeconds:
		return c.StartCount + (c.RampEndCount-c.StartCount)*elapsed/c.RampEndSeconds
	default:
		return math.Min(c.CapCount, c.RampEndCount+c.PerMinute*(elapsed-c.RampEndSeconds)/secondsPerMinute)
	}
}

// Sample evaluates the curve at every given game second.
func (c TargetCurve) Sample(gameSeconds []int) []float64 {
	out := make([]float64, len(gameSeconds))
	for i, sec := range gameSeconds {
		out[i] = c.At(sec)
	}

	return out
}

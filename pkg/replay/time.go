package replay

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GameSpeed is the ratio of game seconds to wall-clock seconds at "Faster"
// game speed.
const GameSpeed = 1.4

const (
	secondsPerMinute = 60

	// floatSlack absorbs representation error of GameSpeed before flooring.
	floatSlack = 1e-9
)

// ErrInvalidTimestamp is returned for cutoff strings not in mm:ss format.
var ErrInvalidTimestamp = errors.New("invalid timestamp, expected mm:ss")

// RealSeconds converts game seconds to wall-clock seconds.
func RealSeconds(gameSeconds float64) float64 {
	return gameSeconds / GameSpeed
}

// GameSeconds converts wall-clock seconds to game seconds.
func GameSeconds(realSeconds float64) float64 {
	return realSeconds * GameSpeed
}

// Timestamp formats whole seconds as mm:ss.
func Timestamp(seconds float64) string {
	total := int(seconds)

	return fmt.Sprintf("%02d:%02d", total/secondsPerMinute, total%secondsPerMinute)
}

// GameTimestamp formats a game-second value as a wall-clock mm:ss label.
func GameTimestamp(gameSeconds int) string {
	return Timestamp(RealSeconds(float64(gameSeconds)))
}

// ParseTimestamp parses a wall-clock mm:ss string into whole game seconds.
// Fractional game seconds are dropped: event times are whole seconds, so
// "t <= 588.8" and "t <= 588" select the same events.
func ParseTimestamp(value string) (int, error) {
	minutesStr, secondsStr, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || strings.Contains(secondsStr, ":") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	seconds, err := strconv.Atoi(secondsStr)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	game := GameSeconds(float64(minutes*secondsPerMinute + seconds))

	return int(math.Floor(game + floatSlack)), nil
}

package track

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/skilltracker/pkg/registry"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// Driver errors. Both are invariant violations of the event source.
var (
	ErrEmptyStream = fmt.Errorf("%w: empty event stream", registry.ErrInvariant)
	ErrOutOfOrder  = fmt.Errorf("%w: events out of time order", registry.ErrInvariant)
)

// ErrStopped is returned by Consume when a consumer aborts the replay.
var ErrStopped = errors.New("consumption stopped")

// Result describes how far consumption went.
type Result struct {
	// Cutoff is the actual game second reached. Short games yield less than
	// the requested cutoff.
	Cutoff int
	// Delivered counts events handed to consumers.
	Delivered int
	// Left is set when a player-leave event ended the game.
	Left bool
}

// Consume pushes events to every consumer in order until a player leaves,
// an event exceeds the cutoff, or the stream is exhausted.
func Consume(events []replay.Event, consumers []Consumer, cutoff Cutoff) (Result, error) {
	if len(events) == 0 {
		return Result{}, ErrEmptyStream
	}

	var res Result

	last := events[0].Second()

	for _, ev := range events {
		t := ev.Second()
		if t < last {
			return res, fmt.Errorf("%w: %d after %d", ErrOutOfOrder, t, last)
		}

		last = t

		if !cutoff.Allows(t) {
			// The game ran past the cutoff, so the cutoff itself was reached.
			res.Cutoff = cutoff.Seconds()

			return res, nil
		}

		for _, c := range consumers {
			err := c.Consume(ev)
			if err != nil {
				return res, fmt.Errorf("%w at %s: %w", ErrStopped, replay.GameTimestamp(t), err)
			}
		}

		res.Delivered++

		if _, ok := ev.(replay.PlayerLeave); ok {
			res.Cutoff = t
			res.Left = true

			return res, nil
		}
	}

	res.Cutoff = last

	return res, nil
}

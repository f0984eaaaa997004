package injects

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/skilltracker/pkg/alg/stats"
	"github.com/Sumatoshi-tech/skilltracker/pkg/registry"
)

// History errors. Both mean events past the cutoff were consumed.
var (
	ErrCutoffBeforeCreation = fmt.Errorf("%w: hatchery created after cutoff", registry.ErrInvariant)
	ErrDestroyedAfterCutoff = fmt.Errorf("%w: hatchery destroyed after cutoff", registry.ErrInvariant)
)

// ErrNoHatchery is returned when a hatchery index is out of range.
var ErrNoHatchery = errors.New("no such hatchery")

// History summarizes one hatchery's inject coverage up to a cutoff.
type History struct {
	HatcheryID int64 `json:"hatchery_id" yaml:"hatchery_id"`
	Created    int   `json:"created"     yaml:"created"`
	// LifeEnd is the earlier of the cutoff and the hatchery's death.
	LifeEnd int `json:"life_end" yaml:"life_end"`
	// EarliestInject is nil when no queen existed before LifeEnd.
	EarliestInject *int       `json:"earliest_inject,omitempty" yaml:"earliest_inject,omitempty"`
	Injects        []Interval `json:"injects"                   yaml:"injects"`
	Missed         []Interval `json:"missed"                    yaml:"missed"`
	// NoQueen is how long the hatchery existed before any queen did.
	NoQueen            int     `json:"no_queen"            yaml:"no_queen"`
	ProportionInjected float64 `json:"proportion_injected" yaml:"proportion_injected"`
}

// Destroyed reports whether the hatchery died before the cutoff.
func (h History) Destroyed(cutoff int) bool {
	return h.LifeEnd < cutoff
}

// historyOf derives the coverage of one record. It does not mutate the
// record, so repeated calls with the same cutoff agree.
func historyOf(rec *hatchery, firstQueen *int, cutoff int) (History, error) {
	if rec.created > cutoff {
		return History{}, fmt.Errorf("%w: #%d created at %d, cutoff %d", ErrCutoffBeforeCreation, rec.id, rec.created, cutoff)
	}

	lifeEnd := cutoff

	if rec.destroyed != nil {
		if *rec.destroyed > cutoff {
			return History{}, fmt.Errorf("%w: #%d destroyed at %d, cutoff %d",
				ErrDestroyedAfterCutoff, rec.id, *rec.destroyed, cutoff)
		}

		lifeEnd = *rec.destroyed
	}

	h := History{
		HatcheryID:     rec.id,
		Created:        rec.created,
		LifeEnd:        lifeEnd,
		EarliestInject: earliestInject(rec.created, firstQueen, lifeEnd),
		Injects:        clamp(rec.injects, lifeEnd),
		NoQueen:        noQueen(rec.created, lifeEnd, firstQueen),
	}

	h.Missed = missed(h.Injects, h.EarliestInject, lifeEnd)
	h.ProportionInjected = proportion(h.Injects, h.EarliestInject, lifeEnd)

	return h, nil
}

func earliestInject(created int, firstQueen *int, lifeEnd int) *int {
	if firstQueen == nil || *firstQueen > lifeEnd {
		return nil
	}

	earliest := max(created, *firstQueen)

	return &earliest
}

// clamp drops intervals starting at or after lifeEnd and shortens the rest.
func clamp(intervals []Interval, lifeEnd int) []Interval {
	out := make([]Interval, 0, len(intervals))

	for _, iv := range intervals {
		if iv.Start >= lifeEnd {
			continue
		}

		out = append(out, Interval{Start: iv.Start, End: min(iv.End, lifeEnd)})
	}

	return out
}

// noQueen is the overlap of [created, lifeEnd) with the time before the
// first queen.
func noQueen(created, lifeEnd int, firstQueen *int) int {
	if firstQueen == nil {
		return lifeEnd - created
	}

	return min(lifeEnd, *firstQueen) - min(created, *firstQueen)
}

// missed returns idle periods in chronological order: before the first
// inject, between injects and after the last one. The leading and trailing
// periods may be zero-length; gaps between queued injects are skipped.
func missed(injects []Interval, earliest *int, lifeEnd int) []Interval {
	if earliest == nil {
		return []Interval{}
	}

	if len(injects) == 0 {
		return []Interval{{Start: *earliest, End: lifeEnd}}
	}

	out := make([]Interval, 0, len(injects)+1)
	out = append(out, Interval{Start: *earliest, End: max(*earliest, injects[0].Start)})

	for i := 1; i < len(injects); i++ {
		gap := Interval{Start: injects[i-1].End, End: injects[i].Start}
		if gap.Duration() > 0 {
			out = append(out, gap)
		}
	}

	last := injects[len(injects)-1].End

	return append(out, Interval{Start: last, End: max(last, lifeEnd)})
}

func proportion(injects []Interval, earliest *int, lifeEnd int) float64 {
	if earliest == nil || *earliest == lifeEnd {
		return 0
	}

	durations := make([]int, len(injects))
	for i, iv := range injects {
		durations[i] = iv.Duration()
	}

	return stats.Proportion(durations, lifeEnd-*earliest)
}

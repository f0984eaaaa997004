package trends

import (
	"github.com/Sumatoshi-tech/skilltracker/pkg/alg/stats"
	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
)

// Metric names, also used as cache value keys.
const (
	MetricLarvaSpending    = "larva_spending"
	MetricInjectProportion = "inject_proportion"
)

const percent = 100

// Metric measures one data point per replay.
type Metric interface {
	Name() string
	Title() string
	Unit() string

	// Measure returns the replay's data point, or ok=false when the replay
	// does not qualify for this trend.
	Measure(res *analysis.Result, set *analysis.Set) (value float64, ok bool, err error)
}

// DefaultMetrics returns the trends computed by default.
func DefaultMetrics() []Metric {
	return []Metric{LarvaSpending{}, InjectProportion{}}
}

// reachedCutoff reports whether the game lasted up to the requested cutoff.
func reachedCutoff(res *analysis.Result) bool {
	return res.Requested.Bounded() && res.Cutoff >= res.Requested.Seconds()
}

// LarvaSpending is the mean number of unspent larvae over the stats ticks.
// Lower is better.
type LarvaSpending struct{}

// Name implements Metric.
func (LarvaSpending) Name() string { return MetricLarvaSpending }

// Title implements Metric.
func (LarvaSpending) Title() string { return "Larva spending" }

// Unit implements Metric.
func (LarvaSpending) Unit() string { return "unspent larvae" }

// Measure implements Metric.
func (LarvaSpending) Measure(res *analysis.Result, set *analysis.Set) (float64, bool, error) {
	samples := set.Larvae.Samples()
	if !reachedCutoff(res) || len(samples) == 0 {
		return 0, false, nil
	}

	counts := make([]float64, len(samples))
	for i, s := range samples {
		counts[i] = float64(s.Larvae)
	}

	return stats.Mean(counts), true, nil
}

// InjectProportion is the main hatchery's inject uptime in percent. Games
// where the main hatchery died before the cutoff do not qualify.
type InjectProportion struct{}

// Name implements Metric.
func (InjectProportion) Name() string { return MetricInjectProportion }

// Title implements Metric.
func (InjectProportion) Title() string { return "Main hatchery inject uptime" }

// Unit implements Metric.
func (InjectProportion) Unit() string { return "%" }

// Measure implements Metric.
func (InjectProportion) Measure(res *analysis.Result, set *analysis.Set) (float64, bool, error) {
	if !reachedCutoff(res) || set.Injects.HatcheryCount() == 0 {
		return 0, false, nil
	}

	main, err := set.Injects.History(0, res.Cutoff)
	if err != nil {
		return 0, false, err
	}

	if main.Destroyed(res.Cutoff) {
		return 0, false, nil
	}

	return main.ProportionInjected * percent, true, nil
}

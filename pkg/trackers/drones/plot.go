package drones

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

const (
	emptyValue   = "-"
	targetDigits = 100
)

// Series expands the samples onto one value per game second up to cutoff,
// repeating the last count so the line reaches the end of the chart.
// Seconds before the first sample are nil.
func (t *Tracker) Series(cutoff int) []*int {
	if cutoff < 0 {
		return nil
	}

	out := make([]*int, cutoff+1)
	next := 0

	var current *int

	for sec := range out {
		for next < len(t.samples) && t.samples[next].Time <= sec {
			count := t.samples[next].Drones
			current = &count
			next++
		}

		out[sec] = current
	}

	return out
}

// Chart draws the actual count as a step line against the target curve on a
// per-second axis.
func (t *Tracker) Chart(co *plotpage.ChartOpts, cutoff int, overlays ...plotpage.Overlay) *charts.Line {
	if co == nil {
		co = plotpage.DefaultChartOpts()
	}

	pal := co.Palette()
	axis := plotpage.SecondsAxis(cutoff)

	actual := make([]opts.LineData, axis.Len())
	for i, v := range t.Series(cutoff) {
		if v == nil {
			actual[i] = opts.LineData{Value: emptyValue}

			continue
		}

		actual[i] = opts.LineData{Value: *v}
	}

	targets := t.curve.Sample(axis.Seconds)
	target := make([]opts.LineData, len(targets))

	for i, v := range targets {
		target[i] = opts.LineData{Value: math.Round(v*targetDigits) / targetDigits}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(plotpage.ChartWidth, plotpage.ChartHeight)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithDataZoomOpts(co.DataZoom()...),
		charts.WithXAxisOpts(co.XAxis("time")),
		charts.WithYAxisOpts(co.YAxis("drones")),
		charts.WithLegendOpts(co.Legend()),
		charts.WithGridOpts(co.Grid()),
	)
	line.SetXAxis(axis.Labels())

	actualOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Step: "end", ShowSymbol: opts.Bool(false)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.DronesActual}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.DronesActual, Width: 2}),
	}
	actualOpts = append(actualOpts, plotpage.OverlayOptions(axis, co, overlays)...)

	line.AddSeries("drones actual", actual, actualOpts...)
	line.AddSeries("drones target", target,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.DronesTarget}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.DronesTarget, Width: 2, Type: "dashed"}),
	)

	return line
}

// Section wraps the chart for the report page.
func (t *Tracker) Section(co *plotpage.ChartOpts, cutoff int, overlays ...plotpage.Overlay) (plotpage.Section, error) {
	return plotpage.Section{
		Group:    t.owner.Name,
		Title:    t.Title(),
		Subtitle: "Drone count against a benchmark of 22 drones at 2:12 and 10 more per minute up to 80.",
		Chart:    t.Chart(co, cutoff, overlays...),
		Hint: plotpage.Hint{
			Title: "How to interpret:",
			Items: []string{
				"<strong>Red line under the blue one</strong> = drone production behind the benchmark",
				"<strong>Vertical lines</strong> = completed upgrades",
				"A drone morphing into a building keeps counting until it is consumed",
			},
		},
	}, nil
}

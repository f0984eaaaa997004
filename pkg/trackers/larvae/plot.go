package larvae

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

const bankStack = "bank"

// Axis places one category per sample so bars stay contiguous.
func (t *Tracker) Axis() plotpage.TimeAxis {
	seconds := make([]int, len(t.samples))
	for i, s := range t.samples {
		seconds[i] = s.Time
	}

	return plotpage.TimeAxis{Seconds: seconds}
}

// SupplyBlockedPeriods returns the sample index ranges [i-1, i] that end in
// a supply block.
func (t *Tracker) SupplyBlockedPeriods() [][2]int {
	var periods [][2]int

	for i := 1; i < len(t.samples); i++ {
		if t.samples[i].SupplyBlocked() {
			periods = append(periods, [2]int{i - 1, i})
		}
	}

	return periods
}

// Chart draws banked minerals and gas as stacked bars with the larva count
// on a second axis. Supply blocks are shaded.
func (t *Tracker) Chart(co *plotpage.ChartOpts, overlays ...plotpage.Overlay) *charts.Bar {
	if co == nil {
		co = plotpage.DefaultChartOpts()
	}

	pal := co.Palette()
	axis := t.Axis()

	minerals := make([]opts.BarData, len(t.samples))
	gas := make([]opts.BarData, len(t.samples))
	larvae := make([]opts.LineData, len(t.samples))

	for i, s := range t.samples {
		minerals[i] = opts.BarData{Value: s.Minerals}
		gas[i] = opts.BarData{Value: s.Gas}
		larvae[i] = opts.LineData{Value: s.Larvae}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(plotpage.ChartWidth, plotpage.ChartHeight)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithDataZoomOpts(co.DataZoom()...),
		charts.WithXAxisOpts(co.XAxis("time")),
		charts.WithYAxisOpts(co.YAxis("resources")),
		charts.WithLegendOpts(co.Legend()),
		charts.WithGridOpts(co.Grid()),
	)
	bar.ExtendYAxis(co.SecondaryYAxis("larvae"))
	bar.SetXAxis(axis.Labels())

	mineralOpts := []charts.SeriesOpts{
		charts.WithBarChartOpts(opts.BarChart{Stack: bankStack, BarCategoryGap: "0%"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Minerals}),
	}

	if blocked := t.SupplyBlockedPeriods(); len(blocked) > 0 {
		areas := make([]opts.MarkAreaNameCoordItem, len(blocked))
		for i, p := range blocked {
			areas[i] = opts.MarkAreaNameCoordItem{
				Coordinate0: []interface{}{p[0], "min"},
				Coordinate1: []interface{}{p[1], "max"},
			}
		}

		mineralOpts = append(mineralOpts,
			charts.WithMarkAreaNameCoordItemOpts(areas...),
			charts.WithMarkAreaStyleOpts(opts.MarkAreaStyle{
				ItemStyle: &opts.ItemStyle{Color: pal.SupplyBlocked},
			}),
		)
	}

	mineralOpts = append(mineralOpts, plotpage.OverlayOptions(axis, co, overlays)...)

	bar.AddSeries("minerals", minerals, mineralOpts...)
	bar.AddSeries("gas", gas,
		charts.WithBarChartOpts(opts.BarChart{Stack: bankStack, BarCategoryGap: "0%"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Gas}),
	)

	line := charts.NewLine()
	line.SetXAxis(axis.Labels())
	line.AddSeries("larvae", larvae,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, ShowSymbol: opts.Bool(false)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Larvae}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.Larvae, Width: 2}),
	)

	bar.Overlap(line)

	return bar
}

// Section wraps the chart for the report page.
func (t *Tracker) Section(co *plotpage.ChartOpts, _ int, overlays ...plotpage.Overlay) (plotpage.Section, error) {
	return plotpage.Section{
		Group:    t.owner.Name,
		Title:    t.Title(),
		Subtitle: "Banked minerals and gas against unspent larvae, sampled every player-stats tick.",
		Chart:    t.Chart(co, overlays...),
		Hint: plotpage.Hint{
			Title: "How to interpret:",
			Items: []string{
				"<strong>High bars with many larvae</strong> = resources and larvae both floating, spend them",
				"<strong>High bars with no larvae</strong> = larva starved, inject more or add hatcheries",
				"<strong>Shaded periods</strong> = fewer than 2 free supply below 200",
			},
		},
	}, nil
}

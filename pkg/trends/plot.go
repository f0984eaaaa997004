package trends

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

const (
	emptyValue  = "-"
	valueDigits = 100
	dateLayout  = "2006-01-02"
)

func round(v float64) float64 {
	return math.Round(v*valueDigits) / valueDigits
}

// Labels names the x axis positions, oldest replay first.
func (r *Result) Labels() []string {
	out := make([]string, len(r.Points))
	for i, p := range r.Points {
		out[i] = strconv.Itoa(i+1) + " " + p.ModTime.Format(dateLayout)
	}

	return out
}

func fitData(f Fit, n int) []opts.LineData {
	out := make([]opts.LineData, n)
	for x := range out {
		if x < f.From {
			out[x] = opts.LineData{Value: emptyValue}

			continue
		}

		out[x] = opts.LineData{Value: round(f.At(x))}
	}

	return out
}

// Chart draws one metric's points with the overall and recent fits.
func (r *Result) Chart(s Series, co *plotpage.ChartOpts) *charts.Line {
	if co == nil {
		co = plotpage.DefaultChartOpts()
	}

	pal := co.Palette()

	points := make([]opts.LineData, len(s.Values))
	for i, v := range s.Values {
		points[i] = opts.LineData{Value: round(v)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(plotpage.ChartWidth, plotpage.ChartHeight)),
		charts.WithTooltipOpts(co.Tooltip("axis")),
		charts.WithXAxisOpts(co.XAxis("replay")),
		charts.WithYAxisOpts(co.YAxis(s.Unit)),
		charts.WithLegendOpts(co.Legend()),
		charts.WithGridOpts(co.Grid()),
	)
	line.SetXAxis(r.Labels())

	line.AddSeries(s.Title, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.TrendPoints}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.TrendPoints, Width: 1}),
	)
	line.AddSeries("overall trend", fitData(s.Overall, len(s.Values)),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.TrendOverall}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.TrendOverall, Width: 2}),
	)
	line.AddSeries("recent trend", fitData(s.Recent, len(s.Values)),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.TrendRecent}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pal.TrendRecent, Width: 2, Type: "dashed"}),
	)

	return line
}

// Sections returns one page section per series.
func (r *Result) Sections(co *plotpage.ChartOpts) []plotpage.Section {
	out := make([]plotpage.Section, 0, len(r.Series))

	for _, s := range r.Series {
		out = append(out, plotpage.Section{
			Group: r.Player,
			Title: s.Title,
			Subtitle: fmt.Sprintf("%d replays up to %s. Slope per replay: overall %+.2f, last %d %+.2f.",
				len(s.Values), replay.GameTimestamp(r.Cutoff), s.Overall.Slope, len(s.Values)-s.Recent.From, s.Recent.Slope),
			Chart: r.Chart(s, co),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"Replays run oldest to newest, left to right",
					"<strong>Solid line</strong> = least squares fit over every replay",
					"<strong>Dashed line</strong> = fit over the most recent replays only",
				},
			},
		})
	}

	return out
}

// WritePlot renders the trends as an HTML page.
func (r *Result) WritePlot(w io.Writer, theme plotpage.Theme) error {
	if theme == "" {
		theme = plotpage.ThemeDark
	}

	page := plotpage.NewPage("Trends for "+r.Player, fmt.Sprintf("%d of %d inspected replays", len(r.Points), r.Inspected))
	page.WithTheme(theme)
	page.Add(r.Sections(plotpage.NewChartOpts(theme))...)

	return page.Render(w)
}

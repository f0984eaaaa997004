package injects

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

// SegmentKind classifies a span of a hatchery's life.
type SegmentKind string

// Segment kinds, used as legend names.
const (
	SegmentInjected SegmentKind = "injected"
	SegmentIdle     SegmentKind = "idle"
	SegmentNoQueen  SegmentKind = "no queen"
)

const (
	percent    = 100
	segmentGap = "40%"
)

// Segment is a colored span of a hatchery bar.
type Segment struct {
	Interval
	Kind SegmentKind
}

// Segments splits a hatchery's life into chronological spans: the time
// without a queen, then injected and idle spans. Empty spans are dropped.
func Segments(h History) []Segment {
	var out []Segment

	if h.NoQueen > 0 {
		out = append(out, Segment{Interval{h.Created, h.Created + h.NoQueen}, SegmentNoQueen})
	}

	spans := make([]Segment, 0, len(h.Injects)+len(h.Missed))
	for _, iv := range h.Injects {
		spans = append(spans, Segment{iv, SegmentInjected})
	}

	for _, iv := range h.Missed {
		spans = append(spans, Segment{iv, SegmentIdle})
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	for _, s := range spans {
		if s.Duration() > 0 {
			out = append(out, s)
		}
	}

	return out
}

// Label is the y-axis label of a hatchery bar.
func Label(index int, h History) string {
	return fmt.Sprintf("#%d %.0f%%", index+1, h.ProportionInjected*percent)
}

// Chart draws one horizontal bar per hatchery. Bars are stacks of
// segments offset by an invisible span up to the hatchery's creation.
func (t *Tracker) Chart(co *plotpage.ChartOpts, cutoff int) (*charts.Bar, error) {
	if co == nil {
		co = plotpage.DefaultChartOpts()
	}

	histories, err := t.Histories(cutoff)
	if err != nil {
		return nil, err
	}

	pal := co.Palette()
	colors := map[SegmentKind]string{
		SegmentInjected: pal.Injected,
		SegmentIdle:     pal.Idle,
		SegmentNoQueen:  pal.NoQueen,
	}

	labels := make([]string, len(histories))
	rows := make([][]Segment, len(histories))
	depth := 0

	for i, h := range histories {
		labels[i] = Label(i, h)
		rows[i] = Segments(h)
		depth = max(depth, len(rows[i]))
	}

	yAxis := co.YAxis("")
	yAxis.Type = "category"
	yAxis.Inverse = opts.Bool(true)
	xAxis := co.ValueXAxis("time", cutoff)
	xAxis.AxisLabel = co.GameClockLabel()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init(plotpage.ChartWidth, barHeight(len(histories)))),
		charts.WithTooltipOpts(co.Tooltip("item")),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithLegendOpts(co.Legend()),
		charts.WithGridOpts(co.Grid()),
	)
	bar.SetXAxis(labels)
	bar.XYReversal()

	offsets := make([]opts.BarData, len(histories))
	for i, h := range histories {
		offsets[i] = opts.BarData{Value: h.Created, ItemStyle: &opts.ItemStyle{Color: "transparent"}}
	}

	stack := charts.WithBarChartOpts(opts.BarChart{Stack: "life", BarCategoryGap: segmentGap})
	bar.AddSeries("created", offsets, stack)

	for level := range depth {
		data := make([]opts.BarData, len(rows))

		for i, row := range rows {
			if level >= len(row) {
				data[i] = opts.BarData{Value: 0}

				continue
			}

			seg := row[level]
			data[i] = opts.BarData{
				Name:      string(seg.Kind),
				Value:     seg.Duration(),
				ItemStyle: &opts.ItemStyle{Color: colors[seg.Kind]},
			}
		}

		bar.AddSeries(fmt.Sprintf("segment %d", level+1), data, stack)
	}

	// Legend entries only; segment colors are set per item.
	for _, kind := range []SegmentKind{SegmentInjected, SegmentIdle, SegmentNoQueen} {
		bar.AddSeries(string(kind), []opts.BarData{},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[kind]}))
	}

	return bar, nil
}

const (
	barRowHeight = 48
	barMinHeight = 200
)

func barHeight(rows int) string {
	return fmt.Sprintf("%dpx", max(barMinHeight, rows*barRowHeight+barMinHeight/2))
}

// Section wraps the chart for the report page.
func (t *Tracker) Section(co *plotpage.ChartOpts, cutoff int, _ ...plotpage.Overlay) (plotpage.Section, error) {
	chart, err := t.Chart(co, cutoff)
	if err != nil {
		return plotpage.Section{}, err
	}

	return plotpage.Section{
		Group:    t.owner.Name,
		Title:    t.Title(),
		Subtitle: "Inject coverage per hatchery, ordered by creation. Labels show the share of time injected.",
		Chart:    chart,
		Hint: plotpage.Hint{
			Title: "How to interpret:",
			Items: []string{
				"<strong>Green</strong> = inject active, queued injects continue back to back",
				"<strong>Red</strong> = a queen existed but the hatchery was not injected",
				"<strong>Grey</strong> = no queen yet, not counted against you",
			},
		},
	}, nil
}

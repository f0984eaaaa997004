package plotpage

import (
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// TimeAxis maps game seconds onto the categories of a chart's x-axis.
// Seconds holds the game second of each category in ascending order.
type TimeAxis struct {
	Seconds []int
}

// SecondsAxis returns one category per game second from 0 through end.
func SecondsAxis(end int) TimeAxis {
	if end < 0 {
		end = 0
	}

	seconds := make([]int, end+1)
	for i := range seconds {
		seconds[i] = i
	}

	return TimeAxis{Seconds: seconds}
}

// Len returns the number of categories.
func (a TimeAxis) Len() int {
	return len(a.Seconds)
}

// Index returns the last category at or before game second sec. Times
// before the first category map to 0.
func (a TimeAxis) Index(sec int) int {
	i := sort.SearchInts(a.Seconds, sec+1) - 1
	if i < 0 {
		return 0
	}

	return i
}

// Labels formats every category as a wall-clock mm:ss label.
func (a TimeAxis) Labels() []string {
	labels := make([]string, len(a.Seconds))
	for i, sec := range a.Seconds {
		labels[i] = replay.GameTimestamp(sec)
	}

	return labels
}

// Overlay decorates a series of another tracker's chart, e.g. with mark
// lines at the times of recorded events.
type Overlay interface {
	OverlayOptions(axis TimeAxis, co *ChartOpts) []charts.SeriesOpts
}

// OverlayOptions collects the series options of all overlays.
func OverlayOptions(axis TimeAxis, co *ChartOpts, overlays []Overlay) []charts.SeriesOpts {
	var out []charts.SeriesOpts

	for _, o := range overlays {
		out = append(out, o.OverlayOptions(axis, co)...)
	}

	return out
}

// gameClockJS formats a game-second axis value as a wall-clock mm:ss label.
const gameClockJS = `function (v) {
	var s = Math.floor(v / 1.4);
	var m = Math.floor(s / 60);
	s = s % 60;
	return (m < 10 ? '0' : '') + m + ':' + (s < 10 ? '0' : '') + s;
}`

// GameClockLabel returns value-axis labels showing game seconds as mm:ss.
func (c *ChartOpts) GameClockLabel() *opts.AxisLabel {
	return &opts.AxisLabel{Color: c.theme.ChartTextMuted, Formatter: opts.FuncOpts(gameClockJS)}
}

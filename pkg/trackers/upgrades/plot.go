package upgrades

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
)

// OverlayOptions implements plotpage.Overlay with one vertical mark line
// per completed upgrade.
func (t *Tracker) OverlayOptions(axis plotpage.TimeAxis, co *plotpage.ChartOpts) []charts.SeriesOpts {
	if len(t.samples) == 0 {
		return nil
	}

	items := make([]opts.MarkLineNameXAxisItem, len(t.samples))
	for i, s := range t.samples {
		items[i] = opts.MarkLineNameXAxisItem{Name: s.Label, XAxis: axis.Index(s.Time)}
	}

	color := co.Palette().Upgrade

	return []charts.SeriesOpts{
		charts.WithMarkLineNameXAxisItemOpts(items...),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: color, Type: "solid"},
			Label:     &opts.Label{Show: opts.Bool(true), Formatter: "{b}", Color: color, Position: "insideEndTop"},
		}),
	}
}

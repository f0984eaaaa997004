package report

import (
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
)

// Plotter is a tracker that draws its own chart section.
type Plotter interface {
	track.Tracker

	Section(co *plotpage.ChartOpts, cutoff int, overlays ...plotpage.Overlay) (plotpage.Section, error)
}

// OverlaysFor returns the subsidiary trackers that can be drawn on p.
func OverlaysFor(p track.Tracker, subs []track.Subsidiary) []plotpage.Overlay {
	var out []plotpage.Overlay

	for _, s := range subs {
		overlay, ok := s.(plotpage.Overlay)
		if ok && s.CanShareWith(p) {
			out = append(out, overlay)
		}
	}

	return out
}

// Sections builds the chart sections of every tracked player.
func Sections(res *analysis.Result, co *plotpage.ChartOpts) ([]plotpage.Section, error) {
	var sections []plotpage.Section

	for _, set := range res.Sets {
		for _, tr := range set.Primary() {
			p, ok := tr.(Plotter)
			if !ok {
				continue
			}

			section, err := p.Section(co, res.Cutoff, OverlaysFor(tr, set.Subsidiary())...)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", set.Player.Name, tr.Kind(), err)
			}

			sections = append(sections, section)
		}
	}

	return sections, nil
}

// WritePlot renders res as a self-contained HTML page.
// An empty theme selects the dark one.
func WritePlot(w io.Writer, res *analysis.Result, theme plotpage.Theme) error {
	if theme == "" {
		theme = plotpage.ThemeDark
	}

	co := plotpage.NewChartOpts(theme)

	sections, err := Sections(res, co)
	if err != nil {
		return err
	}

	page := plotpage.NewPage(res.Map, fmt.Sprintf("%s, analyzed to %s", res.Path, replay.GameTimestamp(res.Cutoff)))
	page.WithTheme(theme)
	page.Add(sections...)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}

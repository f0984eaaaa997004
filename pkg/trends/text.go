package trends

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/terminal"
)

// WriteText renders a summary table of every series.
func (r *Result) WriteText(w io.Writer, colored bool) error {
	style := terminal.New(colored)

	oldest, newest := r.Points[0].ModTime, r.Points[len(r.Points)-1].ModTime

	tbl := style.Table()
	tbl.AppendHeader(table.Row{"Trend", "Oldest", "Newest", "Slope", "Recent slope"})

	for _, s := range r.Series {
		last := len(s.Values) - 1
		tbl.AppendRow(table.Row{
			s.Title,
			fmt.Sprintf("%.2f", s.Values[0]),
			fmt.Sprintf("%.2f", s.Values[last]),
			fmt.Sprintf("%+.3f", s.Overall.Slope),
			fmt.Sprintf("%+.3f", s.Recent.Slope),
		})
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		style.Header("Trends for "+r.Player),
		style.Muted(fmt.Sprintf("%d replays from %s to %s, cut off at %s",
			len(r.Points), humanize.Time(oldest), humanize.Time(newest), replay.GameTimestamp(r.Cutoff))),
		tbl.Render())
	if err != nil {
		return fmt.Errorf("text write: %w", err)
	}

	return nil
}

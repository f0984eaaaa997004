package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/terminal"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/injects"
)

// WriteText renders rep as console tables.
func WriteText(w io.Writer, rep *Report, colored bool) error {
	style := terminal.New(colored)

	var parts []string

	parts = append(parts, style.Muted(fmt.Sprintf("%s on %s, analyzed to %s (requested %s)",
		rep.Replay, rep.Map, rep.CutoffClock, rep.RequestedCutoff)))

	for _, p := range rep.Players {
		parts = append(parts, playerText(style, p))
	}

	if _, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n"); err != nil {
		return fmt.Errorf("text write: %w", err)
	}

	return nil
}

func playerText(style terminal.Style, p Player) string {
	parts := []string{style.Header(p.Name)}

	drones := 0
	if n := len(p.Drones); n > 0 {
		drones = p.Drones[n-1].Drones
	}

	parts = append(parts, fmt.Sprintf("Larvae produced: %d | Drones: %d | Upgrades: %d",
		p.LarvaeProduced, drones, len(p.Upgrades)))

	if len(p.Hatcheries) > 0 {
		bars := make([]string, len(p.Hatcheries))
		for i, h := range p.Hatcheries {
			bars[i] = style.Bar(fmt.Sprintf("Hatchery #%d", i+1), h.ProportionInjected)
		}

		parts = append(parts, "Injects:\n"+strings.Join(bars, "\n"), hatcheryTable(style, p.Hatcheries))
	}

	if len(p.Larvae) > 0 {
		parts = append(parts, larvaeTable(style, p))
	}

	if len(p.Upgrades) > 0 {
		tbl := style.Table()
		tbl.AppendHeader(table.Row{"time", "upgrade"})

		for _, u := range p.Upgrades {
			tbl.AppendRow(table.Row{replay.GameTimestamp(u.Time), u.Label})
		}

		parts = append(parts, "Upgrades:\n"+tbl.Render())
	}

	return strings.Join(parts, "\n\n")
}

func hatcheryTable(style terminal.Style, histories []injects.History) string {
	tbl := style.Table()
	tbl.AppendHeader(table.Row{"#", "created", "until", "injects", "idle", "no queen"})

	for i, h := range histories {
		idle := 0
		for _, m := range h.Missed {
			idle += m.Duration()
		}

		tbl.AppendRow(table.Row{
			i + 1,
			replay.GameTimestamp(h.Created),
			replay.GameTimestamp(h.LifeEnd),
			len(h.Injects),
			replay.GameTimestamp(idle),
			replay.GameTimestamp(h.NoQueen),
		})
	}

	return tbl.Render()
}

func larvaeTable(style terminal.Style, p Player) string {
	tbl := style.Table()
	tbl.AppendHeader(table.Row{"time", "minerals", "gas", "larvae", "supply", ""})

	for _, s := range p.Larvae {
		blocked := ""
		if s.SupplyBlocked() {
			blocked = "blocked"
		}

		tbl.AppendRow(table.Row{
			replay.GameTimestamp(s.Time),
			s.Minerals,
			s.Gas,
			s.Larvae,
			fmt.Sprintf("%d/%d", s.SupplyUsed, s.SupplyCap),
			blocked,
		})
	}

	return "Larvae vs resources:\n" + tbl.Render()
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/terminal"
)

func (a *App) playersCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "players [replay]",
		Short: "List the players of a replay",
		Long:  "List the players that report economy stats in a replay (the newest by default).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			path, err := replay.ResolvePath(name, a.cfg.Replays.Dir)
			if err != nil {
				return err
			}

			players, err := a.analyzer.Players(cmd.Context(), path)
			if err != nil {
				return err
			}

			style := terminal.New(colored(noColor))

			tbl := style.Table()
			tbl.AppendHeader(table.Row{"#", "Name", "Race", "Control"})

			for _, p := range players {
				control := "human"
				if p.AI {
					control = "A.I."
				}

				tbl.AppendRow(table.Row{strconv.Itoa(p.ID), p.Name, p.Race, control})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", style.Header(path), tbl.Render())

			return err
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/terminal"
)

const defaultReplaysLimit = 20

func (a *App) replaysCommand() *cobra.Command {
	var (
		limit   int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "replays",
		Short: "List the replay collection, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := replay.ListReplays(a.cfg.Replays.Dir)
			if err != nil {
				return err
			}

			total := len(files)
			if limit > 0 && limit < total {
				files = files[:limit]
			}

			style := terminal.New(colored(noColor))

			tbl := style.Table()
			tbl.AppendHeader(table.Row{"Name", "Age", "Size"})

			for _, f := range files {
				tbl.AppendRow(table.Row{f.Name, humanize.Time(f.ModTime), humanize.Bytes(uint64(max(f.Size, 0)))})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n",
				tbl.Render(), style.Muted(fmt.Sprintf("%d of %d replays in %s", len(files), total, a.cfg.Replays.Dir)))

			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultReplaysLimit, "Replays to list (0 = all)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

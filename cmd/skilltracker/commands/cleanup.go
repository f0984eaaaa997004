package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/cleanup"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/terminal"
)

func (a *App) cleanupCommand() *cobra.Command {
	var (
		opts    cleanup.Options
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete co-op, non-1v1 and vs A.I. replays",
		Long: `Classify the replays in the replay directory, newest first, and delete
co-op missions, games with other than two players and games against the
A.I. Nothing is deleted unless --dry-run=false is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := replay.ListReplays(a.cfg.Replays.Dir)
			if err != nil {
				return err
			}

			opts.Progress = func(inspected, total int) {
				a.progressf(cmd, "\rprocessing: %.1f%%", float64(inspected)/float64(total)*100)
			}

			sum, err := cleanup.New(a.loader, a.logger).Run(cmd.Context(), files, opts)
			a.progressf(cmd, "\n")

			if err != nil {
				return err
			}

			style := terminal.New(colored(noColor))

			tbl := style.Table()
			tbl.AppendHeader(table.Row{"Replay", "Reason", "Detail"})

			for _, v := range sum.Deleted {
				tbl.AppendRow(table.Row{v.File.Name, string(v.Reason), v.Detail})
			}

			verb := "deleted"
			if opts.DryRun {
				verb = "would delete"
			}

			summary := fmt.Sprintf("%s %d of %d replays", verb, len(sum.Deleted), sum.Inspected)
			if n := len(sum.Unreadable); n > 0 {
				summary += fmt.Sprintf(", %d unreadable kept", n)
			}

			if len(sum.Deleted) > 0 {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render()); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), style.Muted(summary))

			return err
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", true, "Only report what would be deleted")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Inspect only the newest N replays (0 = all)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/report"
)

// stdoutName as --output writes to standard output.
const stdoutName = "-"

type plotOptions struct {
	format  string
	output  string
	cutoff  string
	theme   string
	player  string
	noColor bool
}

func (a *App) plotCommand() *cobra.Command {
	o := &plotOptions{}

	cmd := &cobra.Command{
		Use:   "plot [replay]",
		Short: "Analyze one replay",
		Long: `Analyze one replay. The replay is a path or a file name inside the replay
directory; without one the newest replay is used.

Every Zerg player is analyzed unless --player picks one. The plot format
writes an HTML page, by default next to the working directory as
<replay>.html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.plot(cmd, args, o)
		},
	}

	cmd.Flags().StringVarP(&o.format, "format", "f", report.FormatPlot, "Output format: "+strings.Join(report.Formats(), ", "))
	cmd.Flags().StringVarP(&o.output, "output", "o", "", `Output file ("-" for stdout; default <replay>.html for plot, stdout otherwise)`)
	cmd.Flags().StringVarP(&o.cutoff, "cutoff", "c", "", "Stop at this game clock time, mm:ss (default: config cutoff, else game end)")
	cmd.Flags().StringVar(&o.theme, "theme", "", "Plot theme: dark or light")
	cmd.Flags().StringVarP(&o.player, "player", "p", "", "Analyze only this player (name prefix)")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored text output")

	return cmd
}

func (a *App) plot(cmd *cobra.Command, args []string, o *plotOptions) error {
	format, err := report.ValidateFormat(o.format)
	if err != nil {
		return err
	}

	theme, err := parseTheme(o.theme)
	if err != nil {
		return err
	}

	cutoffText := o.cutoff
	if cutoffText == "" {
		cutoffText = a.cfg.Cutoff
	}

	cutoff, err := parseCutoff(cutoffText)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	path, err := replay.ResolvePath(name, a.cfg.Replays.Dir)
	if err != nil {
		return err
	}

	res, err := a.analyzer.Analyze(cmd.Context(), path, a.analysisOptions(cutoff, o.player))
	if err != nil {
		return err
	}

	output := o.output
	if output == "" && format == report.FormatPlot {
		output = defaultPlotOutput(path)
	}

	return writeOutput(cmd, output, func(w io.Writer) error {
		return report.Write(w, res, format, report.WriteOptions{Theme: theme, Colored: colored(o.noColor)})
	}, a.quiet)
}

func defaultPlotOutput(replayPath string) string {
	base := filepath.Base(replayPath)

	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// writeOutput runs write against stdout or the named file.
func writeOutput(cmd *cobra.Command, output string, write func(io.Writer) error, quiet bool) error {
	if output == "" || output == stdoutName {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := write(f); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if !quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
	}

	return nil
}

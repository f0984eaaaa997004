package commands

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/report"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trendcache"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trends"
)

const (
	defaultTrendsOutput = "trends.html"
	trendCacheDir       = "trends"
)

type trendsOptions struct {
	format     string
	output     string
	theme      string
	player     string
	cutoff     string
	shortGame  string
	replays    int
	recent     int
	noCache    bool
	clearCache bool
	noColor    bool
}

func (a *App) trendsCommand() *cobra.Command {
	o := &trendsOptions{}

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Follow larva spending and inject uptime across recent replays",
		Long: `Walk the replay directory newest first and measure, for the configured
player, the mean number of unspent larvae and the main hatchery's inject
uptime up to the trend cutoff. Games shorter than the cutoff, or where the
main hatchery died, are left out. The result is plotted oldest to newest
with a least squares trend over all replays and over the recent ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.trends(cmd, o)
		},
	}

	cmd.Flags().StringVarP(&o.format, "format", "f", report.FormatPlot, "Output format: "+strings.Join(report.Formats(), ", "))
	cmd.Flags().StringVarP(&o.output, "output", "o", "", `Output file ("-" for stdout; default `+defaultTrendsOutput+` for plot)`)
	cmd.Flags().StringVar(&o.theme, "theme", "", "Plot theme: dark or light")
	cmd.Flags().StringVarP(&o.player, "player", "p", "", "Player to follow (default: config player)")
	cmd.Flags().StringVarP(&o.cutoff, "cutoff", "c", "", "Trend cutoff, mm:ss (default: config trends.cutoff)")
	cmd.Flags().StringVar(&o.shortGame, "short-game-cutoff", "", "Skip games shorter than this, mm:ss (default: config)")
	cmd.Flags().IntVarP(&o.replays, "replays", "n", 0, "Replays to include (default: config trends.replays)")
	cmd.Flags().IntVarP(&o.recent, "recent", "r", 0, "Replays in the recent trend (default: config trends.recent)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "Do not read or write the trend cache")
	cmd.Flags().BoolVar(&o.clearCache, "clear-cache", false, "Empty the trend cache first")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored text output")

	return cmd
}

func orDefault[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}

	return value
}

func (a *App) trendsOptions(o *trendsOptions) (trends.Options, error) {
	cutoff, err := replay.ParseTimestamp(orDefault(o.cutoff, a.cfg.Trends.Cutoff))
	if err != nil {
		return trends.Options{}, err
	}

	shortGame, err := replay.ParseTimestamp(orDefault(o.shortGame, a.cfg.Trends.ShortGameCutoff))
	if err != nil {
		return trends.Options{}, err
	}

	return trends.Options{
		Player:    orDefault(o.player, a.cfg.Player),
		Cutoff:    cutoff,
		ShortGame: shortGame,
		Replays:   orDefault(o.replays, a.cfg.Trends.Replays),
		Recent:    orDefault(o.recent, a.cfg.Trends.Recent),
		Analysis:  a.analysisOptions(track.Natural(), ""),
	}, nil
}

func (a *App) trends(cmd *cobra.Command, o *trendsOptions) error {
	format, err := report.ValidateFormat(o.format)
	if err != nil {
		return err
	}

	theme, err := parseTheme(o.theme)
	if err != nil {
		return err
	}

	opts, err := a.trendsOptions(o)
	if err != nil {
		return err
	}

	files, err := replay.ListReplays(a.cfg.Replays.Dir)
	if err != nil {
		return err
	}

	var cache trends.Cache

	if a.cfg.Cache.Enabled && !o.noCache {
		store, openErr := trendcache.Open(filepath.Join(a.cfg.Cache.Dir, trendCacheDir), a.logger)
		if openErr != nil {
			return openErr
		}
		defer store.Close()

		if o.clearCache {
			if clearErr := store.Clear(); clearErr != nil {
				return clearErr
			}
		}

		cache = store
	}

	opts.Progress = func(inspected, accepted int) {
		a.progressf(cmd, "\rinspected %s replays, %s of %s accepted",
			humanize.Comma(int64(inspected)), humanize.Comma(int64(accepted)), humanize.Comma(int64(opts.Replays)))
	}

	res, err := trends.NewCollector(a.analyzer, cache, a.logger).Collect(cmd.Context(), files, opts)
	a.progressf(cmd, "\n")

	if err != nil {
		return err
	}

	output := o.output
	if output == "" && format == report.FormatPlot {
		output = defaultTrendsOutput
	}

	return writeOutput(cmd, output, func(w io.Writer) error {
		return res.Write(w, format, report.WriteOptions{Theme: theme, Colored: colored(o.noColor)})
	}, a.quiet)
}

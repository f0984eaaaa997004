// Package commands implements the skilltracker subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/skilltracker/pkg/analysis"
	"github.com/Sumatoshi-tech/skilltracker/pkg/config"
	"github.com/Sumatoshi-tech/skilltracker/pkg/observability"
	"github.com/Sumatoshi-tech/skilltracker/pkg/plotpage"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay/sc2"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/track"
	"github.com/Sumatoshi-tech/skilltracker/pkg/version"
)

// ErrUnknownTheme is returned for a --theme other than light or dark.
var ErrUnknownTheme = errors.New("unknown theme")

type loaderFunc func(opts sc2.Options, logger *slog.Logger) replay.Loader

func defaultLoader(opts sc2.Options, logger *slog.Logger) replay.Loader {
	return sc2.NewLoader(opts, logger)
}

// App is the state shared by the subcommands of one invocation.
type App struct {
	configPath string
	verbose    bool
	quiet      bool

	newLoader loaderFunc

	cfg      *config.Config
	logger   *slog.Logger
	loader   replay.Loader
	analyzer *analysis.Analyzer
	shutdown func(ctx context.Context) error
}

// Execute runs skilltracker with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, args, stdout, stderr, defaultLoader)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, newLoader loaderFunc) error {
	app := &App{newLoader: newLoader}
	defer app.close()

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "skilltracker",
		Short: "Zerg macro skill tracker for StarCraft II replays",
		Long: `skilltracker measures Zerg macro mechanics in StarCraft II replays:
larvae and resources, drone count against a benchmark, queen inject uptime
and upgrade timings.

Commands:
  plot      Analyze one replay (the newest by default)
  trends    Follow larva spending and inject uptime across recent replays
  players   List the players of a replay
  replays   List the replay collection
  cleanup   Delete co-op, non-1v1 and vs A.I. replays`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "errors only, no progress output")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./.skilltracker.yaml, then ~/.config/skilltracker/config.yaml)")

	root.AddCommand(
		a.plotCommand(),
		a.trendsCommand(),
		a.playersCommand(),
		a.replaysCommand(),
		a.cleanupCommand(),
		versionCommand(),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	obs := observability.DefaultConfig()
	obs.ServiceVersion = version.Version
	obs.Environment = cfg.Telemetry.Environment
	obs.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obs.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obs.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obs.LogLevel = observability.CLILevel(observability.ParseLevel(cfg.Logging.Level), a.verbose, a.quiet)
	obs.LogJSON = cfg.Logging.Format == "json"
	obs.LogOutput = cmd.ErrOrStderr()

	providers, err := observability.Init(obs)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.shutdown = providers.Shutdown

	metrics, err := observability.NewReplayMetrics(providers.Meter)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = providers.Logger
	a.loader = a.newLoader(sc2.Options{SpawnLarvaAbilities: cfg.Replay.SpawnLarvaAbilities}, providers.Logger)
	a.analyzer = analysis.New(a.loader,
		analysis.WithLogger(providers.Logger),
		analysis.WithTracer(providers.Tracer),
		analysis.WithMetrics(metrics),
	)

	return nil
}

// close flushes telemetry. A failed flush does not fail the command.
func (a *App) close() {
	if a.shutdown == nil {
		return
	}

	if err := a.shutdown(context.Background()); err != nil {
		a.logger.Warn("observability shutdown failed", "error", err)
	}
}

func (a *App) analysisOptions(cutoff track.Cutoff, player string) analysis.Options {
	return analysis.Options{
		Cutoff:         cutoff,
		Curve:          a.cfg.Drones.Target,
		InjectDuration: a.cfg.Injects.Duration,
		Player:         player,
	}
}

// progressf writes a progress line to stderr unless --quiet.
func (a *App) progressf(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func parseCutoff(value string) (track.Cutoff, error) {
	if value == "" {
		return track.Natural(), nil
	}

	sec, err := replay.ParseTimestamp(value)
	if err != nil {
		return track.Cutoff{}, err
	}

	return track.At(sec), nil
}

func parseTheme(value string) (plotpage.Theme, error) {
	switch theme := plotpage.Theme(value); theme {
	case "":
		return plotpage.ThemeDark, nil
	case plotpage.ThemeDark, plotpage.ThemeLight:
		return theme, nil
	default:
		return "", fmt.Errorf("%w: %q (want dark or light)", ErrUnknownTheme, value)
	}
}

// colored reports whether text output gets ANSI colors.
func colored(noColor bool) bool {
	return !noColor && !color.NoColor
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// No config or telemetry needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

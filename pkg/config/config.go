// Package config loads skilltracker settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
	"github.com/Sumatoshi-tech/skilltracker/pkg/replay/sc2"
	"github.com/Sumatoshi-tech/skilltracker/pkg/trackers/drones"
)

// Sentinel validation errors.
var (
	ErrInvalidDuration    = errors.New("inject duration must be positive")
	ErrInvalidTrendWindow = errors.New("invalid trend window")
	ErrInvalidLogFormat   = errors.New("log format must be text or json")
)

// Config holds all skilltracker configuration.
type Config struct {
	Player    string          `mapstructure:"player"`
	Cutoff    string          `mapstructure:"cutoff"`
	Replays   ReplaysConfig   `mapstructure:"replays"`
	Replay    ReplayConfig    `mapstructure:"replay"`
	Drones    DronesConfig    `mapstructure:"drones"`
	Injects   InjectsConfig   `mapstructure:"injects"`
	Trends    TrendsConfig    `mapstructure:"trends"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ReplaysConfig locates the replay collection.
type ReplaysConfig struct {
	Dir string `mapstructure:"dir"`
}

// ReplayConfig tunes replay decoding.
type ReplayConfig struct {
	SpawnLarvaAbilities []int64 `mapstructure:"spawn_larva_abilities"`
}

// DronesConfig holds the worker benchmark.
type DronesConfig struct {
	Target drones.TargetCurve `mapstructure:"target"`
}

// InjectsConfig holds inject tracking settings.
type InjectsConfig struct {
	Duration int `mapstructure:"duration"`
}

// TrendsConfig controls the multi-replay trends.
type TrendsConfig struct {
	Cutoff          string `mapstructure:"cutoff"`
	ShortGameCutoff string `mapstructure:"short_game_cutoff"`
	Replays         int    `mapstructure:"replays"`
	Recent          int    `mapstructure:"recent"`
}

// CacheConfig controls the trend data point cache.
type CacheConfig struct {
	Dir     string `mapstructure:"dir"`
	Enabled bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string `mapstructure:"otlp_headers"`
	Environment  string `mapstructure:"environment"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration. An empty configPath searches the working
// directory and the user config directory; a missing file is not an error
// unless configPath names it explicitly.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(localConfigName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, userConfigDir))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("replays.dir", envPrefix+"_REPLAYS_DIR", EnvReplayPath); err != nil {
		return nil, fmt.Errorf("bind replay dir env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if userErr := readUserConfig(v); userErr != nil {
			return nil, userErr
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func readUserConfig(v *viper.Viper) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no user config.
	}

	path := filepath.Join(home, userConfigDir, userConfigName+"."+configType)
	if _, statErr := os.Stat(path); statErr != nil {
		return nil //nolint:nilerr // absent user config is the common case.
	}

	v.SetConfigFile(path)

	if readErr := v.ReadInConfig(); readErr != nil {
		return fmt.Errorf("failed to read config file: %w", readErr)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	curve := drones.DefaultTargetCurve()

	v.SetDefault("player", "")
	v.SetDefault("cutoff", "")
	v.SetDefault("replays.dir", "")
	v.SetDefault("replay.spawn_larva_abilities", sc2.DefaultSpawnLarvaAbilities())

	v.SetDefault("drones.target.start_count", curve.StartCount)
	v.SetDefault("drones.target.ramp_end_seconds", curve.RampEndSeconds)
	v.SetDefault("drones.target.ramp_end_count", curve.RampEndCount)
	v.SetDefault("drones.target.per_minute", curve.PerMinute)
	v.SetDefault("drones.target.cap_seconds", curve.CapSeconds)
	v.SetDefault("drones.target.cap_count", curve.CapCount)

	v.SetDefault("injects.duration", DefaultInjectDuration)

	v.SetDefault("trends.replays", DefaultTrendReplays)
	v.SetDefault("trends.recent", DefaultTrendRecent)
	v.SetDefault("trends.cutoff", DefaultTrendCutoff)
	v.SetDefault("trends.short_game_cutoff", DefaultShortGameCutoff)

	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.dir", defaultCacheDir())

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_headers", "")
	v.SetDefault("telemetry.otlp_insecure", false)
	v.SetDefault("telemetry.environment", "")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "skilltracker")
	}

	return filepath.Join(dir, "skilltracker")
}

func validateConfig(cfg *Config) error {
	if cfg.Injects.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, cfg.Injects.Duration)
	}

	if err := cfg.Drones.Target.Validate(); err != nil {
		return err
	}

	if cfg.Trends.Replays < 2 {
		return fmt.Errorf("%w: trends.replays must be at least 2, got %d", ErrInvalidTrendWindow, cfg.Trends.Replays)
	}

	if cfg.Trends.Recent < 2 {
		return fmt.Errorf("%w: trends.recent must be at least 2, got %d", ErrInvalidTrendWindow, cfg.Trends.Recent)
	}

	for _, ts := range []string{cfg.Cutoff, cfg.Trends.Cutoff, cfg.Trends.ShortGameCutoff} {
		if ts == "" {
			continue
		}

		if _, err := replay.ParseTimestamp(ts); err != nil {
			return err
		}
	}

	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Logging.Format)
	}

	return nil
}

package config

// Environment variables outside the SKILLTRACKER_ prefix.
const (
	// EnvReplayPath is the replay directory variable the tool has always read.
	EnvReplayPath = "SC2_SKILL_TRACKER_REPLAY_PATH"

	envPrefix = "SKILLTRACKER"
)

// Default values.
const (
	DefaultInjectDuration  = 40
	DefaultTrendReplays    = 50
	DefaultTrendRecent     = 15
	DefaultTrendCutoff     = "7:00"
	DefaultShortGameCutoff = "3:00"
	DefaultCacheEnabled    = true
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config file lookup.
const (
	localConfigName = ".skilltracker"
	userConfigDir   = ".config/skilltracker"
	userConfigName  = "config"
	configType      = "yaml"
)

package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys found in config files that bpm does not use.
	Unknown []string
}

// Default values.
const (
	DefaultProjectFile   = "project.json"
	DefaultJournalDir    = "~/.bpm"
	DefaultRuleset       = "weekdays"
	DefaultZoom          = "complete"
	DefaultTimelineWidth = 60
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for bpm.
type Config struct {
	// Paths
	ProjectFile string `toml:"project_file"`
	JournalDir  string `toml:"journal_dir"`

	// Scheduling
	Calendar CalendarConfig `toml:"calendar"`
	Timeline TimelineConfig `toml:"timeline"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// CalendarConfig selects the working-day rules used for duration math.
type CalendarConfig struct {
	// Ruleset is one of everyday, weekdays or co.
	Ruleset string `toml:"ruleset"`
	// Holidays are extra non-working dates in dd/mm/yyyy form.
	Holidays []string `toml:"holidays"`
}

// TimelineConfig holds the default timeline view.
type TimelineConfig struct {
	Zoom  string `toml:"zoom"`
	Width int    `toml:"width"`
}

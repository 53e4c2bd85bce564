package config

import (
	"flag"

	"github.com/Rudull/baby-project-manager/internal/utils"
)

// parseFlags defines the global flags on fs, parses args and copies every
// flag that was explicitly set into cfg. If sources is non-nil, it records
// SourceFlag for those fields.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("bpm", flag.ContinueOnError)
	}

	var (
		projectFile   = cfg.ProjectFile
		journalDir    = cfg.JournalDir
		ruleset       = cfg.Calendar.Ruleset
		holidays      string
		zoom          = cfg.Timeline.Zoom
		width         = cfg.Timeline.Width
		logLevel      = cfg.LogLevel
		logFormat     = cfg.LogFormat
		logTimestamps = cfg.LogTimestamps
		logCaller     = cfg.LogCaller
	)

	// Paths
	fs.StringVar(&projectFile, "project", projectFile, "Path to project file (.json, .yaml)")
	fs.StringVar(&journalDir, "journal-dir", journalDir, "Change journal directory")

	// Scheduling
	fs.StringVar(&ruleset, "calendar", ruleset, "Working-day ruleset (everyday, weekdays, co)")
	fs.StringVar(&holidays, "holidays", "", "Extra holidays, comma-separated dd/mm/yyyy")
	fs.StringVar(&zoom, "zoom", zoom, "Timeline zoom (complete, year, six_month, three_month, one_month)")
	fs.IntVar(&width, "width", width, "Timeline width in columns")

	// Logging
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagToSource := map[string]string{
		"project":        "project_file",
		"journal-dir":    "journal_dir",
		"calendar":       "calendar.ruleset",
		"holidays":       "calendar.holidays",
		"zoom":           "timeline.zoom",
		"width":          "timeline.width",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	// Only explicitly set flags override earlier layers.
	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToSource[f.Name]
		if !ok {
			return
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
		switch f.Name {
		case "project":
			cfg.ProjectFile = projectFile
		case "journal-dir":
			cfg.JournalDir = journalDir
		case "calendar":
			cfg.Calendar.Ruleset = ruleset
		case "holidays":
			cfg.Calendar.Holidays = utils.SplitAndTrim(holidays, ",")
		case "zoom":
			cfg.Timeline.Zoom = zoom
		case "width":
			cfg.Timeline.Width = width
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
	})

	return nil
}

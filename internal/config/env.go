package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rudull/baby-project-manager/internal/utils"
)

// loadFromEnv overrides config from BPM_* environment variables. If sources
// is non-nil, it records SourceEnv for every field that was set.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("BPM_PROJECT"); v != "" {
		cfg.ProjectFile = v
		mark("project_file")
	}
	if v := os.Getenv("BPM_JOURNAL_DIR"); v != "" {
		cfg.JournalDir = v
		mark("journal_dir")
	}
	if v := os.Getenv("BPM_CALENDAR"); v != "" {
		cfg.Calendar.Ruleset = v
		mark("calendar.ruleset")
	}
	if v := os.Getenv("BPM_HOLIDAYS"); v != "" {
		cfg.Calendar.Holidays = utils.SplitAndTrim(v, ",")
		mark("calendar.holidays")
	}
	if v := os.Getenv("BPM_ZOOM"); v != "" {
		cfg.Timeline.Zoom = v
		mark("timeline.zoom")
	}
	if v := os.Getenv("BPM_WIDTH"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("BPM_WIDTH: %w", err)
		}
		cfg.Timeline.Width = n
		mark("timeline.width")
	}

	// Logging configuration
	if v := os.Getenv("BPM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("BPM_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("BPM_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("BPM_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

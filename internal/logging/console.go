package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Rudull/baby-project-manager/internal/project"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "bpm",
	}
}

// NewConsole returns a leveled charmbracelet/log logger writing to w.
func NewConsole(w io.Writer, opts ConsoleOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewConsoleFromConfig creates a console logger from string configuration
// values as they appear in TOML or the environment.
func NewConsoleFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	opts := DefaultConsoleOptions()
	opts.Level = ParseLogLevel(level)
	opts.Formatter = ParseLogFormatter(format)
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return NewConsole(w, opts)
}

// ParseLogLevel parses a string log level to a charmbracelet/log Level.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// LogChange reports a store operation on logger. Applied changes log at
// info, boundary no-ops at debug and discarded edits at warn.
func LogChange(logger *log.Logger, c project.Change) {
	if logger == nil {
		return
	}
	fields := []any{"op", c.Op, "row", c.Actual}
	if c.Field != "" {
		fields = append(fields, "field", c.Field)
	}
	switch {
	case c.Ignored != nil:
		logger.Warn("Edit ignored", append(fields, "err", c.Ignored)...)
	case !c.Applied:
		logger.Debug("Nothing to change", fields...)
	default:
		msg := c.Detail
		if msg == "" {
			msg = string(c.Op)
		}
		logger.Info(msg, fields...)
	}
}

package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# bpm configuration file
# Values can be overridden by BPM_* environment variables or CLI flags

# Project file (relative to project root; .yaml/.yml selects YAML)
project_file = "project.json"

# Change journal directory (supports ~ expansion and %VAR% on Windows)
journal_dir = "~/.bpm"

# Logging: level (debug, info, warn, error), format (text, json, logfmt)
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

[calendar]
# Working-day ruleset: everyday, weekdays, or co (weekdays minus Colombian holidays)
ruleset = "weekdays"
# Extra non-working days (dd/mm/yyyy)
holidays = []
# holidays = ["24/12/2024", "31/12/2024"]

[timeline]
# Default zoom: complete, year, six_month, three_month, one_month
zoom = "complete"
# Width of the timeline column in characters
width = 60
`
}

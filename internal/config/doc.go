// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.bpm/bpm.toml or OS-specific config directory)
// 3. Project config file (bpm.toml, .bpm.toml or .bpm/bpm.toml in the project root)
// 4. Environment variables (BPM_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.bpm/bpm.toml (preferred)
// - Windows: %APPDATA%\bpm\bpm.toml
// - macOS: ~/Library/Application Support/bpm/bpm.toml
// - Linux/BSD: $XDG_CONFIG_HOME/bpm/bpm.toml or ~/.config/bpm/bpm.toml
//
// Project-level config locations (overrides user config):
// - ./bpm.toml (preferred)
// - ./.bpm.toml
// - ./.bpm/bpm.toml
package config

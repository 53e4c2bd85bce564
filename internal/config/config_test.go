package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Rudull/baby-project-manager/internal/timeline"
)

// isolate points the user config lookup at an empty directory and clears
// BPM_* variables so the host environment cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "BPM_") {
			t.Setenv(name, "")
		}
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.ProjectFile != DefaultProjectFile {
		t.Errorf("ProjectFile: got %q, want %q", cfg.ProjectFile, DefaultProjectFile)
	}
	if cfg.Calendar.Ruleset != DefaultRuleset {
		t.Errorf("Calendar.Ruleset: got %q, want %q", cfg.Calendar.Ruleset, DefaultRuleset)
	}
	if cfg.Timeline.Width != DefaultTimelineWidth {
		t.Errorf("Timeline.Width: got %d, want %d", cfg.Timeline.Width, DefaultTimelineWidth)
	}
	if z, err := cfg.Zoom(); err != nil || z != timeline.Complete {
		t.Errorf("Zoom: got %v, %v", z, err)
	}
	if p, err := cfg.Provider(); err != nil || p.Name() != "weekdays" {
		t.Errorf("Provider: got %v, %v", p, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BPM_PROJECT", "plan.yaml")
	t.Setenv("BPM_CALENDAR", "co")
	t.Setenv("BPM_HOLIDAYS", "24/12/2024, 31/12/2024")
	t.Setenv("BPM_ZOOM", "three_month")
	t.Setenv("BPM_WIDTH", "120")
	t.Setenv("BPM_LOG_TIMESTAMPS", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	if err := loadFromEnv(cfg, sources); err != nil {
		t.Fatalf("loadFromEnv: %v", err)
	}

	if cfg.ProjectFile != "plan.yaml" {
		t.Errorf("ProjectFile: got %q, want plan.yaml", cfg.ProjectFile)
	}
	if cfg.Calendar.Ruleset != "co" {
		t.Errorf("Calendar.Ruleset: got %q, want co", cfg.Calendar.Ruleset)
	}
	if len(cfg.Calendar.Holidays) != 2 || cfg.Calendar.Holidays[1] != "31/12/2024" {
		t.Errorf("Calendar.Holidays: got %v", cfg.Calendar.Holidays)
	}
	if cfg.Timeline.Width != 120 {
		t.Errorf("Timeline.Width: got %d, want 120", cfg.Timeline.Width)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	for _, field := range []string{"project_file", "calendar.ruleset", "calendar.holidays", "timeline.zoom", "timeline.width", "log_timestamps"} {
		if sources[field] != SourceEnv {
			t.Errorf("source of %s: got %q, want %q", field, sources[field], SourceEnv)
		}
	}
	if _, ok := sources["log_level"]; ok {
		t.Error("log_level should not be attributed to the environment")
	}
}

func TestLoadFromEnvBadWidth(t *testing.T) {
	isolate(t)
	t.Setenv("BPM_WIDTH", "wide")

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadFromEnv(cfg, nil); err == nil {
		t.Fatal("expected error for non-numeric BPM_WIDTH")
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{
		"--project", "flag.json",
		"--calendar", "everyday",
		"--holidays", "01/01/2025,02/01/2025",
		"--zoom", "year",
		"ls", "--all",
	}
	sources := map[string]ConfigSource{}
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.ProjectFile != "flag.json" {
		t.Errorf("ProjectFile: got %q, want flag.json", cfg.ProjectFile)
	}
	if cfg.Calendar.Ruleset != "everyday" {
		t.Errorf("Calendar.Ruleset: got %q, want everyday", cfg.Calendar.Ruleset)
	}
	if len(cfg.Calendar.Holidays) != 2 {
		t.Errorf("Calendar.Holidays: got %v", cfg.Calendar.Holidays)
	}
	if cfg.Timeline.Zoom != "year" {
		t.Errorf("Timeline.Zoom: got %q, want year", cfg.Timeline.Zoom)
	}
	if cfg.Timeline.Width != DefaultTimelineWidth {
		t.Errorf("Timeline.Width changed without a flag: %d", cfg.Timeline.Width)
	}
	if sources["timeline.zoom"] != SourceFlag {
		t.Errorf("source of timeline.zoom: got %q", sources["timeline.zoom"])
	}
	if _, ok := sources["timeline.width"]; ok {
		t.Error("timeline.width should not be attributed to flags")
	}
	if rest := fs.Args(); len(rest) != 2 || rest[0] != "ls" {
		t.Errorf("remaining args: got %v", rest)
	}
}

func TestLoadWithSources(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".bpm", "bpm.toml"), `
log_level = "debug"

[calendar]
ruleset = "co"
holidays = ["24/12/2024"]
`)

	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "bpm.toml"), `
project_file = "plan.yaml"
colour = "blue"

[timeline]
zoom = "six_month"
`)
	t.Chdir(projectDir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("BPM_LOG_LEVEL", "warn")

	fs := flag.NewFlagSet("bpm", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--width", "100", "timeline"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	want := map[string]ConfigSource{
		"project_file":      SourceProjFile,
		"journal_dir":       SourceDefault,
		"calendar.ruleset":  SourceUserFile,
		"calendar.holidays": SourceUserFile,
		"timeline.zoom":     SourceProjFile,
		"timeline.width":    SourceFlag,
		"log_level":         SourceEnv,
		"log_format":        SourceDefault,
	}
	for field, source := range want {
		if got := cws.Sources[field]; got != source {
			t.Errorf("source of %s: got %q, want %q", field, got, source)
		}
	}

	if cfg.ProjectFile != filepath.Join(wd, "plan.yaml") {
		t.Errorf("ProjectFile: got %q, want %q", cfg.ProjectFile, filepath.Join(wd, "plan.yaml"))
	}
	if cfg.ProjectRoot != wd {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, wd)
	}
	if cfg.Calendar.Ruleset != "co" || cfg.LogLevel != "warn" || cfg.Timeline.Width != 100 {
		t.Errorf("merged config: %+v", cfg)
	}
	if z, _ := cfg.Zoom(); z != timeline.SixMonths {
		t.Errorf("Zoom: got %s, want six_month", z)
	}
	if cfg.JournalDir != filepath.Join(home, ".bpm") {
		t.Errorf("JournalDir: got %q", cfg.JournalDir)
	}

	if len(cws.Files) != 2 || cws.GetConfigFile() != "bpm.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
	if len(cws.Unknown) != 1 || !strings.HasPrefix(cws.Unknown[0], "colour") {
		t.Errorf("Unknown: got %v", cws.Unknown)
	}
	if rest := fs.Args(); len(rest) != 1 || rest[0] != "timeline" {
		t.Errorf("remaining args: got %v", rest)
	}
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown ruleset", []string{"--calendar", "mars"}},
		{"bad holiday", []string{"--holidays", "2024-12-24"}},
		{"bad zoom", []string{"--zoom", "decade"}},
		{"negative width", []string{"--width", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Chdir(t.TempDir())
			if _, err := Load(flag.NewFlagSet("bpm", flag.ContinueOnError), tt.args); err == nil {
				t.Errorf("Load(%v): expected error", tt.args)
			}
		})
	}
}

func TestLoadProjectConfigInBpmDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".bpm", "bpm.toml"), "[calendar]\nruleset = \"everyday\"\n")
	t.Chdir(dir)

	cfg, err := Load(flag.NewFlagSet("bpm", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Calendar.Ruleset != "everyday" {
		t.Errorf("Calendar.Ruleset: got %q, want everyday", cfg.Calendar.Ruleset)
	}
}

func TestExampleConfigParses(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bpm.toml"), ExampleConfig())
	t.Chdir(dir)

	cws, err := LoadWithSources(flag.NewFlagSet("bpm", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if len(cws.Unknown) != 0 {
		t.Errorf("example config has unknown keys: %v", cws.Unknown)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("BPM_TEST_DIR", "plans")

	tests := []struct {
		input string
		want  string
	}{
		{"~/journal", filepath.Join(home, "journal")},
		{"~", home},
		{"~user/journal", "~user/journal"},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$BPM_TEST_DIR/a.json", "plans/a.json"},
		{"", ""},
	}
	if runtime.GOOS == "windows" {
		tests = append(tests, struct {
			input string
			want  string
		}{`%BPM_TEST_DIR%\logs`, `plans\logs`})
	} else {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\journal`, `~\journal`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	abs := filepath.Join(t.TempDir(), "elsewhere.json")

	if got := resolvePath("project.json", root); got != filepath.Join(root, "project.json") {
		t.Errorf("relative: got %q", got)
	}
	if got := resolvePath(abs, root); got != abs {
		t.Errorf("absolute: got %q", got)
	}
	if got := resolvePath("", root); got != "" {
		t.Errorf("empty: got %q", got)
	}
}

func TestExpandPercentVars(t *testing.T) {
	env := map[string]string{"HOME": `C:\Users\ana`, "EMPTY": ""}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	tests := []struct {
		input string
		want  string
	}{
		{`%HOME%\plans`, `C:\Users\ana\plans`},
		{`a%EMPTY%b`, `ab`},
		{`%MISSING%\x`, `%MISSING%\x`},
		{`100%%`, `100%`},
		{`50% done`, `50% done`},
		{`no vars`, `no vars`},
	}
	for _, tt := range tests {
		if got := expandPercentVars(tt.input, lookup); got != tt.want {
			t.Errorf("expandPercentVars(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := boolFromString(tt.input); got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/config"
	"github.com/Rudull/baby-project-manager/internal/logging"
	"github.com/Rudull/baby-project-manager/internal/project"
	"github.com/Rudull/baby-project-manager/internal/projectdir"
	"github.com/Rudull/baby-project-manager/internal/timeline"
	"github.com/Rudull/baby-project-manager/internal/ui"
)

// timelineCommand prints the visible rows against the timeline window.
func (a *app) timelineCommand(args []string) error {
	fs := flag.NewFlagSet("bpm timeline", flag.ContinueOnError)
	zoomName := fs.String("zoom", a.cfg.Timeline.Zoom, "Zoom level (complete, year, six_month, three_month, one_month)")
	width := fs.Int("width", a.cfg.Timeline.Width, "Timeline width in columns")
	todayText := fs.String("today", "", "Reference date for fixed-span zooms (dd/mm/yyyy, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	zoom, err := timeline.ParseZoom(*zoomName)
	if err != nil {
		return fmt.Errorf("--zoom: %w", err)
	}
	if *width <= 0 {
		return fmt.Errorf("--width must be positive")
	}
	today := calendar.Day(time.Now().UTC())
	if *todayText != "" {
		if today, err = calendar.ParseDate(*todayText); err != nil {
			return fmt.Errorf("--today: %w", err)
		}
	}

	s, name, err := a.load()
	if err != nil {
		return err
	}
	var extent timeline.Extent
	if start, end, ok := s.Extent(); ok {
		extent = timeline.Extent{Start: start, End: end}
	}
	w := timeline.Compute(extent, today, zoom, *width)

	fmt.Fprintf(a.out, "%s: %s .. %s (%s, %.2f columns/day)\n\n",
		name, calendar.FormatDate(w.Start), calendar.FormatDate(w.End), zoom, w.PixelsPerDay)

	rows := s.VisibleRows()
	nameWidth := len("Task")
	labels := make([]string, len(rows))
	for i, pos := range rows {
		t, _ := s.Task(pos)
		labels[i] = taskLabel(t)
		nameWidth = max(nameWidth, len([]rune(labels[i])))
	}
	for i, pos := range rows {
		t, _ := s.Task(pos)
		fmt.Fprintf(a.out, "%4d  %-*s |%s|\n", i+1, nameWidth, labels[i], timelineBar(w, t, today, *width))
	}
	return nil
}

// timelineBar draws t's span as '#' cells with today marked by '|'.
func timelineBar(w timeline.Window, t project.Task, today time.Time, width int) string {
	cells := []byte(strings.Repeat(" ", width))
	if off := w.Offset(today); off >= 0 && int(off) < width {
		cells[int(off)] = '|'
	}
	if from, to, ok := w.Span(t.StartDate, t.EndDate); ok {
		for c := max(from, 0); c < min(to, width); c++ {
			cells[c] = '#'
		}
	}
	return string(cells)
}

// validateCommand checks the project file against the schema and the
// hierarchy rules.
func (a *app) validateCommand(args []string) error {
	fs := flag.NewFlagSet("bpm validate", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "Validate against this schema file instead of the built-in one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f, err := project.Load(a.cfg.ProjectFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project file: %s\n", a.cfg.ProjectFile)
	result := f.Validate(project.ValidationOptions{SchemaPath: *schemaPath})
	for _, w := range result.Warnings {
		fmt.Fprintf(a.out, "  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Fprintln(a.out, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(a.out, "     - %v\n", e)
		}
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(a.out, "  ✅ Valid (%d tasks)\n", len(f.Tasks))
	return nil
}

// tuiCommand launches the terminal editor.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bpm tui", flag.ContinueOnError)
	noWatch := fs.Bool("no-watch", false, "Do not reload when the project file changes on disk")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	zoom, err := a.cfg.Zoom()
	if err != nil {
		return err
	}
	journal, err := logging.NewJournal(a.cfg.JournalDir, a.cfg.ProjectFile, "tui")
	if err != nil {
		a.log.Warn("Journal unavailable", "err", err)
		journal = nil
	}
	defer journal.Close()

	return ui.RunTUI(ctx, ui.Options{
		Path:    a.cfg.ProjectFile,
		Name:    a.defaultName(),
		Engine:  a.engine,
		Journal: journal,
		Zoom:    zoom,
		Width:   a.cfg.Timeline.Width,
		Watch:   !*noWatch,
	})
}

// logCommand prints the latest change journal file.
func (a *app) logCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bpm log", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of entries to show (0 = all)")
	list := fs.Bool("list", false, "List journal files instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := logging.FindJournalDir(a.cfg.JournalDir, a.cfg.ProjectFile)
	if err != nil {
		return fmt.Errorf("finding journal directory: %w", err)
	}

	if *list {
		files, err := logging.ListLogs(dir)
		if err != nil {
			return fmt.Errorf("listing journal: %w", err)
		}
		for _, f := range files {
			fmt.Fprintln(a.out, f)
		}
		return nil
	}

	path, err := logging.FindLatestLog(dir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(a.out, "No journal entries found.")
		return nil
	}
	if *follow {
		a.log.Info("Following journal (Ctrl+C to stop)", "path", path)
	}
	return logging.TailLog(ctx, a.out, path, *n, *follow)
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	cfg := a.cfg
	values := map[string]string{
		"project_file":      cfg.ProjectFile,
		"journal_dir":       cfg.JournalDir,
		"calendar.ruleset":  cfg.Calendar.Ruleset,
		"calendar.holidays": strings.Join(cfg.Calendar.Holidays, ","),
		"timeline.zoom":     cfg.Timeline.Zoom,
		"timeline.width":    fmt.Sprint(cfg.Timeline.Width),
		"log_level":         cfg.LogLevel,
		"log_format":        cfg.LogFormat,
		"log_timestamps":    fmt.Sprint(cfg.LogTimestamps),
		"log_caller":        fmt.Sprint(cfg.LogCaller),
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(a.out, "Config files:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Settings:")
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %-18s = %-30s (%s)\n", k, values[k], a.cws.Sources[k])
	}
	if len(a.cws.Unknown) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Unknown keys:")
		for _, u := range a.cws.Unknown {
			fmt.Fprintf(a.out, "  %s\n", u)
		}
	}
	return nil
}

// initCommand creates the project file, .bpm/bpm.toml and an exported copy
// of the project schema. Existing files are left alone.
func (a *app) initCommand(args []string) error {
	fs := flag.NewFlagSet("bpm init", flag.ContinueOnError)
	name := fs.String("name", a.defaultName(), "Project name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	root := a.cfg.ProjectRoot
	if _, err := projectdir.Ensure(root); err != nil {
		return err
	}

	files := []struct {
		path  string
		write func(path string) error
	}{
		{a.cfg.ProjectFile, project.NewFile(*name).Save},
		{projectdir.ConfigPath(root), func(path string) error {
			return os.WriteFile(path, []byte(config.ExampleConfig()), 0644)
		}},
		{projectdir.SchemaPath(root), func(path string) error {
			return os.WriteFile(path, project.Schema(), 0644)
		}},
	}
	for _, f := range files {
		rel := f.path
		if r, err := filepath.Rel(root, f.path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		if _, err := os.Stat(f.path); err == nil {
			fmt.Fprintf(a.out, "Skipped %s (already exists)\n", rel)
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := f.write(f.path); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		fmt.Fprintf(a.out, "Created %s\n", rel)
	}
	return nil
}

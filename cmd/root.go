// Package cmd implements the CLI command structure for bpm.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/config"
	"github.com/Rudull/baby-project-manager/internal/logging"
	"github.com/Rudull/baby-project-manager/internal/project"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the bpm CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

// app carries what every command needs.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	engine *calendar.Engine
	out    io.Writer
	log    *log.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("bpm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	cfg := cws.Config
	engine, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		cws:    cws,
		cfg:    cfg,
		engine: engine,
		out:    stdout,
		log:    logging.NewConsoleFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}

	// With no subcommand, list the project.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "rm", "remove":
		return a.rmCommand(remainingArgs)
	case "mv", "move":
		return a.mvCommand(remainingArgs)
	case "dup", "duplicate":
		return a.dupCommand(remainingArgs)
	case "toggle":
		return a.toggleCommand(remainingArgs)
	case "set":
		return a.setCommand(remainingArgs)
	case "sort":
		return a.sortCommand(remainingArgs)
	case "timeline":
		return a.timelineCommand(remainingArgs)
	case "validate":
		return a.validateCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "log":
		return a.logCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// load reads the configured project file.
func (a *app) load() (*project.Store, string, error) {
	f, err := project.Load(a.cfg.ProjectFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("project file %s not found (run `bpm init` to create one)", a.cfg.ProjectFile)
	}
	if err != nil {
		return nil, "", err
	}
	name := f.Name
	if name == "" {
		name = a.defaultName()
	}
	return project.FromFile(f, a.engine), name, nil
}

// mutate loads the project, applies one store operation, and saves the
// result when the operation changed something.
func (a *app) mutate(op func(s *project.Store) (project.Change, error)) error {
	s, name, err := a.load()
	if err != nil {
		return err
	}
	c, err := op(s)
	if err != nil {
		return err
	}
	// Ignored edits are reported as warnings and leave the file untouched.
	logging.LogChange(a.log, c)
	if !c.Applied {
		return nil
	}
	if err := s.ToFile(name).Save(a.cfg.ProjectFile); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	a.record(c, "cli")
	return nil
}

// record appends c to the change journal. Journal failures are logged and
// never fail the command.
func (a *app) record(c project.Change, source string) {
	j, err := logging.NewJournal(a.cfg.JournalDir, a.cfg.ProjectFile, source)
	if err != nil {
		a.log.Warn("Journal unavailable", "err", err)
		return
	}
	defer j.Close()
	if err := j.Record(c); err != nil {
		a.log.Warn("Journal write failed", "err", err)
	}
}

func (a *app) defaultName() string {
	return filepath.Base(a.cfg.ProjectRoot)
}

// rowArg resolves a 1-based visible row as printed by ls to an actual
// position.
func rowArg(s *project.Store, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return -1, fmt.Errorf("invalid row %q", arg)
	}
	pos, err := s.ActualOf(n - 1)
	if err != nil {
		return -1, fmt.Errorf("row %d: %w", n, err)
	}
	return pos, nil
}

// parseInterspersed parses fs over args, allowing flags after positional
// arguments, and returns the positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "bpm version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "bpm - a small project schedule editor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bpm [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls [--all]                 List visible tasks (default command)")
	fmt.Fprintln(w, "  add NAME [options]         Add a task (--start, --end, --duration, --parent ROW)")
	fmt.Fprintln(w, "  rm ROW [--cascade]         Remove a task; --cascade also removes its subtasks")
	fmt.Fprintln(w, "  mv ROW up|down             Move a task past its neighbouring sibling")
	fmt.Fprintln(w, "  dup ROW                    Duplicate a task")
	fmt.Fprintln(w, "  toggle ROW                 Collapse or expand a parent task")
	fmt.Fprintln(w, "  set ROW FIELD VALUE        Edit a field (name, start_date, end_date, duration, dedication, color, notes)")
	fmt.Fprintln(w, "  sort KEY [--desc]          Sort by name, start or end, keeping subtasks with their parent")
	fmt.Fprintln(w, "  timeline [options]         Print the timeline (--zoom, --width, --today)")
	fmt.Fprintln(w, "  validate [--schema FILE]   Validate the project file")
	fmt.Fprintln(w, "  tui [--no-watch]           Launch the terminal editor")
	fmt.Fprintln(w, "  log [-n N] [-f]            Show the change journal")
	fmt.Fprintln(w, "  config                     Show effective configuration and its sources")
	fmt.Fprintln(w, "  init [--name NAME]         Create a project file and .bpm/bpm.toml")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rows are the 1-based row numbers printed by ls.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

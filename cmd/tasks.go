package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/project"
)

// lsCommand lists tasks in canonical order with their visible row numbers.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("bpm ls", flag.ContinueOnError)
	all := fs.Bool("all", false, "Include subtasks hidden under collapsed parents")
	fs.BoolVar(all, "a", false, "Include hidden subtasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, name, err := a.load()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%d tasks, %s calendar)\n\n", name, s.Len(), a.engine.Provider().Name())
	if s.Len() == 0 {
		fmt.Fprintln(a.out, "  No tasks yet.")
		return nil
	}

	tasks := s.Tasks()
	nameWidth := len("Task")
	for _, t := range tasks {
		w := len([]rune(t.Name)) + 2
		if t.IsSubtask {
			w += 2
		}
		nameWidth = max(nameWidth, w)
	}

	fmt.Fprintf(a.out, "%4s  %-*s  %-10s  %-10s  %4s  %5s\n", "Row", nameWidth, "Task", "Start", "End", "Days", "Ded.")
	for pos, t := range tasks {
		row, _ := s.VisibleRowOf(pos)
		if row < 0 && !*all {
			continue
		}
		rowLabel := "-"
		if row >= 0 {
			rowLabel = strconv.Itoa(row + 1)
		}
		fmt.Fprintf(a.out, "%4s  %-*s  %-10s  %-10s  %4s  %5s\n",
			rowLabel,
			nameWidth, taskLabel(t),
			calendar.FormatDate(t.StartDate),
			calendar.FormatDate(t.EndDate),
			optionalInt(t.Duration, ""),
			optionalInt(t.Dedication, "%"),
		)
	}
	return nil
}

// taskLabel renders the collapse marker and subtask indent before the name.
func taskLabel(t project.Task) string {
	switch {
	case t.IsSubtask:
		return "    " + t.Name
	case t.IsParent() && t.Collapsed:
		return "+ " + t.Name
	case t.IsParent():
		return "- " + t.Name
	default:
		return "  " + t.Name
	}
}

func optionalInt(n int, suffix string) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n) + suffix
}

// addCommand inserts a new task at the end of the project or of a parent's
// subtask run.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("bpm add", flag.ContinueOnError)
	start := fs.String("start", "", "Start date (dd/mm/yyyy)")
	end := fs.String("end", "", "End date (dd/mm/yyyy)")
	duration := fs.Int("duration", 0, "Duration in working days")
	parent := fs.String("parent", "", "Row of the parent task; adds a subtask")
	color := fs.String("color", "", "Bar colour (#rrggbb)")
	notes := fs.String("notes", "", "Notes")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("usage: bpm add NAME [--start DATE] [--end DATE] [--duration N] [--parent ROW]")
	}

	task := project.Task{
		Name:  strings.Join(positional, " "),
		Color: *color,
		Notes: *notes,
	}
	if *start != "" {
		if task.StartDate, err = calendar.ParseDate(*start); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}
	if *end != "" {
		if task.EndDate, err = calendar.ParseDate(*end); err != nil {
			return fmt.Errorf("--end: %w", err)
		}
	}
	if *duration < 0 {
		return fmt.Errorf("--duration: %w", calendar.ErrInvalidDuration)
	}
	task.Duration = *duration

	return a.mutate(func(s *project.Store) (project.Change, error) {
		if *parent == "" {
			return s.Append(task)
		}
		pos, err := rowArg(s, *parent)
		if err != nil {
			return project.Change{}, err
		}
		if p, err := s.ParentOf(pos); err == nil && p >= 0 {
			pos = p
		}
		return s.AddSubtask(pos, task)
	})
}

func (a *app) rmCommand(args []string) error {
	fs := flag.NewFlagSet("bpm rm", flag.ContinueOnError)
	cascade := fs.Bool("cascade", false, "Also remove the task's subtasks")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: bpm rm ROW [--cascade]")
	}
	return a.mutate(func(s *project.Store) (project.Change, error) {
		pos, err := rowArg(s, positional[0])
		if err != nil {
			return project.Change{}, err
		}
		if *cascade {
			return s.RemoveWithSubtasks(pos)
		}
		return s.Remove(pos)
	})
}

func (a *app) mvCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: bpm mv ROW up|down")
	}
	var dir project.Direction
	switch strings.ToLower(args[1]) {
	case "up", "u":
		dir = project.Up
	case "down", "d":
		dir = project.Down
	default:
		return fmt.Errorf("invalid direction %q (expected up or down)", args[1])
	}
	return a.mutate(func(s *project.Store) (project.Change, error) {
		pos, err := rowArg(s, args[0])
		if err != nil {
			return project.Change{}, err
		}
		return s.Move(pos, dir)
	})
}

func (a *app) dupCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: bpm dup ROW")
	}
	return a.onRow(args[0], (*project.Store).Duplicate)
}

func (a *app) toggleCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: bpm toggle ROW")
	}
	return a.onRow(args[0], (*project.Store).ToggleCollapse)
}

func (a *app) onRow(arg string, op func(*project.Store, int) (project.Change, error)) error {
	return a.mutate(func(s *project.Store) (project.Change, error) {
		pos, err := rowArg(s, arg)
		if err != nil {
			return project.Change{}, err
		}
		return op(s, pos)
	})
}

// setCommand edits one field. Date and duration edits keep the task's
// scheduling triple consistent on the configured calendar.
func (a *app) setCommand(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: bpm set ROW FIELD VALUE (fields: %s)", strings.Join(project.EditableFields(), ", "))
	}
	field := args[1]
	value := strings.Join(args[2:], " ")
	return a.mutate(func(s *project.Store) (project.Change, error) {
		pos, err := rowArg(s, args[0])
		if err != nil {
			return project.Change{}, err
		}
		return s.SetField(pos, field, value)
	})
}

func (a *app) sortCommand(args []string) error {
	fs := flag.NewFlagSet("bpm sort", flag.ContinueOnError)
	desc := fs.Bool("desc", false, "Sort in descending order")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: bpm sort name|start|end [--desc]")
	}
	key, err := project.ParseSortKey(positional[0])
	if err != nil {
		return err
	}
	return a.mutate(func(s *project.Store) (project.Change, error) {
		return s.Sort(key, *desc), nil
	})
}

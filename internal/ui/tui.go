// Package ui provides the interactive terminal schedule editor.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/logging"
	"github.com/Rudull/baby-project-manager/internal/project"
	"github.com/Rudull/baby-project-manager/internal/timeline"
)

// Options configures the TUI.
type Options struct {
	// Path is the project file; it is created on the first save if missing.
	Path string
	// Name is written to the file when the project has no name yet.
	Name    string
	Engine  *calendar.Engine
	Journal *logging.Journal
	Zoom    timeline.Zoom
	// Width is the initial timeline width in columns; the terminal size
	// takes over once known.
	Width int
	// Today anchors fixed-span zoom levels. Zero means the current date.
	Today time.Time
	// Watch reloads the project when the file changes on disk and there
	// are no unsaved edits.
	Watch bool
}

// leftColumns is the width of everything left of the timeline bar.
const leftColumns = 2 + 2 + nameWidth + 1 + 10 + 1 + 10 + 1 + 5 + 1

const nameWidth = 28

// RunTUI loads the project and runs the editor until the user quits.
func RunTUI(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := newTUIModel(opts)
	if err := m.load(); err != nil {
		return err
	}
	if opts.Watch {
		fw, err := newFileWatcher(opts.Path)
		if err == nil {
			m.watcher = fw
			defer fw.Close()
		} else {
			m.status = fmt.Sprintf("not watching for changes: %v", err)
		}
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := finalModel.(*tuiModel); ok && fm.dirty {
		return fmt.Errorf("quit with unsaved changes to %s", opts.Path)
	}
	return nil
}

type tuiModel struct {
	opts     Options
	name     string
	store    *project.Store
	cursor   int // visible row
	zoom     timeline.Zoom
	width    int
	dirty    bool
	confirm  bool // q pressed once with unsaved edits
	showHelp bool
	status   string
	loadErr  error
	watcher  *fileWatcher
	prompt   *prompt
	input    textinput.Model
}

func newTUIModel(opts Options) *tuiModel {
	if opts.Engine == nil {
		opts.Engine = calendar.NewEngine(nil)
	}
	width := opts.Width
	if width <= 0 {
		width = 60
	}
	return &tuiModel{
		opts:  opts,
		name:  opts.Name,
		store: project.NewStore(opts.Engine),
		zoom:  opts.Zoom,
		width: width,
		input: newInput(),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - leftColumns; w >= 10 {
			m.width = w
		}
		return m, nil
	case fileChangedMsg:
		if !m.dirty {
			if err := m.load(); err != nil {
				m.status = err.Error()
			} else {
				m.status = "reloaded after external change"
			}
		} else {
			m.status = "file changed on disk; press r to discard your edits and reload"
		}
		return m, m.watcher.wait()
	case watchErrMsg:
		m.status = fmt.Sprintf("watch error: %v", msg.err)
		return m, m.watcher.wait()
	case tea.KeyMsg:
		if m.prompt != nil {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	if m.prompt != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.confirm = false
	}
	if m.showHelp && key != "ctrl+c" {
		m.showHelp = false
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.dirty && !m.confirm {
			m.confirm = true
			m.status = "unsaved changes: press w to save or q again to quit"
			return m, nil
		}
		m.dirty = false
		return m, tea.Quit
	case "h", "?":
		m.showHelp = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.VisibleCount()-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, m.store.VisibleCount()-1)
	case " ", "space", "enter":
		m.onCursor(m.store.ToggleCollapse)
	case "K":
		m.onCursor(func(pos int) (project.Change, error) { return m.store.Move(pos, project.Up) })
	case "J":
		m.onCursor(func(pos int) (project.Change, error) { return m.store.Move(pos, project.Down) })
	case "a":
		return m, m.promptAdd()
	case "A":
		return m, m.promptAddSubtask()
	case "e":
		return m, m.promptSet()
	case "d":
		m.onCursor(m.store.Duplicate)
	case "x":
		m.onCursor(m.store.Remove)
	case "X":
		m.onCursor(m.store.RemoveWithSubtasks)
	case "n":
		m.sort(project.SortByName, false)
	case "N":
		m.sort(project.SortByName, true)
	case "s":
		m.sort(project.SortByStart, false)
	case "S":
		m.sort(project.SortByStart, true)
	case "+", "=":
		m.zoom = m.zoom.In()
		m.status = "zoom " + m.zoom.String()
	case "-", "_":
		m.zoom = m.zoom.Out()
		m.status = "zoom " + m.zoom.String()
	case "w", "ctrl+s":
		if err := m.save(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved " + m.opts.Path
		}
	case "r":
		if err := m.load(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "reloaded"
		}
	}
	return m, nil
}

// onCursor applies op to the task under the cursor.
func (m *tuiModel) onCursor(op func(pos int) (project.Change, error)) {
	pos, err := m.store.ActualOf(m.cursor)
	if err != nil {
		m.status = "no task selected"
		return
	}
	m.apply(op(pos))
}

func (m *tuiModel) sort(key project.SortKey, descending bool) {
	var id string
	if pos, err := m.store.ActualOf(m.cursor); err == nil {
		t, _ := m.store.Task(pos)
		id = t.ID
	}
	m.apply(m.store.Sort(key, descending), nil)
	// Keep the cursor on the same task.
	if pos, ok := m.store.IndexOf(id); ok {
		if row, _ := m.store.VisibleRowOf(pos); row >= 0 {
			m.cursor = row
		}
	}
}

// apply records a store result and moves the cursor to the affected task.
func (m *tuiModel) apply(c project.Change, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	if !c.Applied {
		m.status = "nothing to change"
		return
	}
	m.dirty = true
	m.status = c.Detail
	if err := m.opts.Journal.Record(c); err != nil {
		m.status = fmt.Sprintf("%s (journal: %v)", c.Detail, err)
	}
	if c.Op != project.OpSort && c.Op != project.OpRemove && c.Visible >= 0 {
		m.cursor = c.Visible
	}
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	if n := m.store.VisibleCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// load replaces the store with the file's contents. A missing file starts
// an empty project.
func (m *tuiModel) load() error {
	f, err := project.Load(m.opts.Path)
	if errors.Is(err, os.ErrNotExist) {
		m.store = project.NewStore(m.opts.Engine)
		m.loadErr = nil
		m.dirty = false
		m.clampCursor()
		return nil
	}
	if err != nil {
		m.loadErr = err
		return err
	}
	m.store = project.FromFile(f, m.opts.Engine)
	if f.Name != "" {
		m.name = f.Name
	}
	m.loadErr = nil
	m.dirty = false
	m.clampCursor()
	return nil
}

func (m *tuiModel) save() error {
	if err := m.store.ToFile(m.name).Save(m.opts.Path); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *tuiModel) today() time.Time {
	if !m.opts.Today.IsZero() {
		return calendar.Day(m.opts.Today)
	}
	return calendar.Day(time.Now().UTC())
}

func (m *tuiModel) window() timeline.Window {
	start, end, ok := m.store.Extent()
	var extent timeline.Extent
	if ok {
		extent = timeline.Extent{Start: start, End: end}
	}
	return timeline.Compute(extent, m.today(), m.zoom, m.width)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rudull/baby-project-manager/internal/project"
)

// prompt is a one-line input shown above the footer. submit receives the
// trimmed text when the user presses enter.
type prompt struct {
	label  string
	submit func(text string)
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (m *tuiModel) openPrompt(label, value, placeholder string, submit func(string)) tea.Cmd {
	m.prompt = &prompt{label: label, submit: submit}
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *tuiModel) closePrompt() {
	m.prompt = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m *tuiModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		m.status = "cancelled"
		return m, nil
	case tea.KeyEnter:
		p := m.prompt
		text := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if text != "" {
			p.submit(text)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// promptAdd asks for the name of a new top-level task appended at the end.
func (m *tuiModel) promptAdd() tea.Cmd {
	return m.openPrompt("New task", "", "name", func(name string) {
		m.apply(m.store.Append(project.Task{Name: name}))
	})
}

// cursorTask returns the task under the cursor.
func (m *tuiModel) cursorTask() (project.Task, bool) {
	task, err := m.store.TaskAtVisibleRow(m.cursor)
	if err != nil {
		m.status = "no task selected"
		return project.Task{}, false
	}
	return task, true
}

// resolve finds the task with id in the current store, which may have been
// reloaded since the prompt opened.
func (m *tuiModel) resolve(id string) (int, bool) {
	pos, ok := m.store.IndexOf(id)
	if !ok {
		m.status = "task no longer exists"
	}
	return pos, ok
}

// promptAddSubtask asks for the name of a subtask added at the end of the
// cursor task's block. Under a collapsed parent the new subtask is hidden.
func (m *tuiModel) promptAddSubtask() tea.Cmd {
	task, ok := m.cursorTask()
	if !ok {
		return nil
	}
	return m.openPrompt("New subtask", "", "name", func(name string) {
		if pos, ok := m.resolve(task.ID); ok {
			m.apply(m.store.AddSubtask(pos, project.Task{Name: name}))
		}
	})
}

// promptSet asks for "FIELD VALUE" and applies it to the cursor task. The
// input starts with the task's name so a rename only needs editing.
func (m *tuiModel) promptSet() tea.Cmd {
	task, ok := m.cursorTask()
	if !ok {
		return nil
	}
	placeholder := strings.Join(project.EditableFields(), "|") + " VALUE"
	return m.openPrompt("Set", project.FieldName+" "+task.Name, placeholder, func(text string) {
		pos, ok := m.resolve(task.ID)
		if !ok {
			return
		}
		field, value, _ := strings.Cut(text, " ")
		c, err := m.store.SetField(pos, field, strings.TrimSpace(value))
		if err == nil && c.Ignored != nil {
			m.status = c.Field + " not changed: " + c.Ignored.Error()
			return
		}
		m.apply(c, err)
	})
}

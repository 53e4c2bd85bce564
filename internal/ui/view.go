package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/project"
	"github.com/Rudull/baby-project-manager/internal/timeline"
)

const defaultBarColor = "#4A90D9"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	subtaskIndent = "  "
)

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}
	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading project file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		m.writeFooter(&b)
		return b.String()
	}

	w := m.window()
	m.writeHeader(&b, w)
	if m.store.VisibleCount() == 0 {
		b.WriteString(dimStyle.Render("  No tasks yet. Press a or use `bpm add` to create one.") + "\n")
	}
	for row := 0; row < m.store.VisibleCount(); row++ {
		task, err := m.store.TaskAtVisibleRow(row)
		if err != nil {
			break
		}
		m.writeRow(&b, row, task, w)
	}
	b.WriteString("\n")
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	title := m.name
	if title == "" {
		title = "Untitled project"
	}
	if m.dirty {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n\n")
}

func (m *tuiModel) writeHeader(b *strings.Builder, w timeline.Window) {
	header := fmt.Sprintf("    %-*s %-10s %-10s %5s ", nameWidth, "Task", "Start", "End", "Days")
	scale := fmt.Sprintf("%s .. %s (%s)", calendar.FormatDate(w.Start), calendar.FormatDate(w.End), m.zoom)
	b.WriteString(header + dimStyle.Render(truncate(scale, m.width)) + "\n")
	b.WriteString(strings.Repeat("-", leftColumns+m.width) + "\n")
}

func (m *tuiModel) writeRow(b *strings.Builder, row int, task project.Task, w timeline.Window) {
	marker := " "
	switch {
	case task.IsParent() && task.Collapsed:
		marker = "+"
	case task.IsParent():
		marker = "-"
	}
	name := task.Name
	if task.IsSubtask {
		name = subtaskIndent + name
	}
	left := fmt.Sprintf("  %s %-*s %-10s %-10s %5s ",
		marker,
		nameWidth, truncate(name, nameWidth),
		calendar.FormatDate(task.StartDate),
		calendar.FormatDate(task.EndDate),
		formatDuration(task.Duration),
	)
	if row == m.cursor {
		left = cursorStyle.Render(left)
	}
	b.WriteString(left + m.bar(task, w) + "\n")
}

// bar renders the task's span within the window, one cell per column.
func (m *tuiModel) bar(task project.Task, w timeline.Window) string {
	cells := []rune(strings.Repeat(" ", m.width))
	todayCol := -1
	if off := w.Offset(m.today()); off >= 0 && int(off) < m.width {
		todayCol = int(off)
	}

	from, to, ok := w.Span(task.StartDate, task.EndDate)
	from, to = max(from, 0), min(to, m.width)
	if !ok || from >= m.width {
		if todayCol >= 0 {
			return string(cells[:todayCol]) + todayStyle.Render("|")
		}
		return ""
	}
	if to <= from {
		to = from + 1
	}

	color := task.Color
	if color == "" {
		color = defaultBarColor
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	var out strings.Builder
	before := string(cells[:from])
	if todayCol >= 0 && todayCol < from {
		before = string(cells[:todayCol]) + todayStyle.Render("|") + string(cells[todayCol+1:from])
	}
	out.WriteString(before)
	out.WriteString(style.Render(strings.Repeat("█", to-from)))
	if todayCol >= to {
		out.WriteString(string(cells[to:todayCol]) + todayStyle.Render("|"))
	}
	return out.String()
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	if m.prompt != nil {
		b.WriteString(m.prompt.label + ": " + m.input.View() + "\n")
		b.WriteString(dimStyle.Render("enter to confirm | esc to cancel") + "\n")
		return
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dimStyle.Render("Press h for help | w to save | q to quit") + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j   Move the cursor\n")
	b.WriteString("  g, G           First or last row\n")
	b.WriteString("  space, enter   Collapse or expand a parent\n")
	b.WriteString("  K, J           Move the task up or down\n")
	b.WriteString("  a              Add a task at the end\n")
	b.WriteString("  A              Add a subtask to the task's parent block\n")
	b.WriteString("  e              Edit a field as \"FIELD VALUE\", e.g. end_date 05/02/2024\n")
	b.WriteString("  d              Duplicate the task\n")
	b.WriteString("  x              Remove the task, keeping its subtasks\n")
	b.WriteString("  X              Remove the task and its subtasks\n")
	b.WriteString("  n, N           Sort by name (ascending, descending)\n")
	b.WriteString("  s, S           Sort by start date (ascending, descending)\n")
	b.WriteString("  +, -           Zoom the timeline in or out\n")
	b.WriteString("  w, ctrl+s      Save\n")
	b.WriteString("  r              Reload from disk\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func formatDuration(days int) string {
	if days <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", days)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

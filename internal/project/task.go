package project

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

var (
	// ErrOutOfRange reports a position outside the canonical sequence or
	// the visible projection. No mutation was performed.
	ErrOutOfRange = errors.New("position out of range")

	// ErrStructural reports an operation that would break the task
	// hierarchy, such as inserting a subtask with no parent before it.
	ErrStructural = errors.New("structural violation")

	// ErrInvalidDate and ErrInvalidDuration are reported through
	// Change.Ignored when a field edit is discarded.
	ErrInvalidDate     = calendar.ErrInvalidDate
	ErrInvalidDuration = calendar.ErrInvalidDuration
)

// CopySuffix is appended to the name of a duplicated task.
const CopySuffix = " (copy)"

// Task is one schedulable unit.
type Task struct {
	// ID is the opaque handle assigned when the task enters a Store.
	ID         string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Duration   int // working days in [StartDate, EndDate]
	Dedication int // percent; not validated here
	Color      string
	Notes      string
	IsSubtask  bool
	Collapsed  bool // only meaningful on top-level tasks
	// Children lists subtask IDs in canonical order. It is derived by the
	// Store and ignored on input.
	Children []string
}

// IsParent reports whether the task is top-level and has subtasks.
func (t *Task) IsParent() bool {
	return !t.IsSubtask && len(t.Children) > 0
}

// clone returns a deep copy of t.
func (t *Task) clone() Task {
	c := *t
	if t.Children != nil {
		c.Children = append([]string(nil), t.Children...)
	}
	return c
}

// duplicate copies the scalar fields of t into a new task without an ID or
// hierarchy links.
func (t *Task) duplicate() *Task {
	return &Task{
		Name:       t.Name + CopySuffix,
		StartDate:  t.StartDate,
		EndDate:    t.EndDate,
		Duration:   t.Duration,
		Dedication: t.Dedication,
		Color:      t.Color,
		Notes:      t.Notes,
		IsSubtask:  t.IsSubtask,
	}
}

func (t *Task) dates() calendar.Dates {
	return calendar.Dates{Start: t.StartDate, End: t.EndDate, Duration: t.Duration}
}

func (t *Task) setDates(d calendar.Dates) {
	t.StartDate, t.EndDate, t.Duration = d.Start, d.End, d.Duration
}

func newID() string {
	return uuid.NewString()
}

package project

import (
	"fmt"
	"time"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

// Store owns the canonical task sequence. It is not safe for concurrent
// use; callers serialize mutations.
type Store struct {
	tasks  []*Task
	engine *calendar.Engine
	view   *projection // nil when stale
}

// NewStore returns an empty store whose date edits go through engine.
func NewStore(engine *calendar.Engine) *Store {
	if engine == nil {
		engine = calendar.NewEngine(calendar.Weekdays{})
	}
	return &Store{engine: engine}
}

// Engine returns the business-day engine used for date edits.
func (s *Store) Engine() *calendar.Engine {
	return s.engine
}

// Len returns the number of tasks in the canonical sequence.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Task returns a copy of the task at actual position pos.
func (s *Store) Task(pos int) (Task, error) {
	if err := s.checkPos(pos); err != nil {
		return Task{}, err
	}
	return s.tasks[pos].clone(), nil
}

// Tasks returns copies of all tasks in canonical order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.clone()
	}
	return out
}

// IndexOf returns the actual position of the task with the given handle.
func (s *Store) IndexOf(id string) (int, bool) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// ParentOf returns the actual position of the parent of the subtask at pos,
// or -1 when pos is a top-level task.
func (s *Store) ParentOf(pos int) (int, error) {
	if err := s.checkPos(pos); err != nil {
		return -1, err
	}
	return s.parentOf(pos), nil
}

// Insert places task at actual position pos (0..Len). The position is not
// adjusted: a top-level task inserted inside another parent's run takes over
// the subtasks that follow it. A subtask needs a task before it.
func (s *Store) Insert(task Task, pos int) (Change, error) {
	if pos < 0 || pos > len(s.tasks) {
		return Change{}, fmt.Errorf("insert at %d: %w", pos, ErrOutOfRange)
	}
	if task.IsSubtask && pos == 0 {
		return Change{}, fmt.Errorf("insert subtask at 0: %w", ErrStructural)
	}
	t := task.clone()
	if t.ID == "" {
		t.ID = newID()
	}
	t.Children = nil
	if t.IsSubtask {
		t.Collapsed = false
	}
	s.settle(&t)
	s.insertAt(pos, &t)
	return s.change(OpInsert, pos, pos, pos+1, fmt.Sprintf("inserted %q", t.Name)), nil
}

// Append adds task as a top-level task at the end of the sequence.
func (s *Store) Append(task Task) (Change, error) {
	task.IsSubtask = false
	return s.Insert(task, len(s.tasks))
}

// AddSubtask appends task to the end of the subtask run of the parent at
// parentPos. If parentPos is itself a subtask, its parent is used.
func (s *Store) AddSubtask(parentPos int, task Task) (Change, error) {
	if err := s.checkPos(parentPos); err != nil {
		return Change{}, err
	}
	if p := s.parentOf(parentPos); p >= 0 {
		parentPos = p
	}
	task.IsSubtask = true
	return s.Insert(task, s.blockEnd(parentPos))
}

// Remove deletes exactly the task at pos. Subtasks of a removed parent are
// promoted to top-level tasks in place.
func (s *Store) Remove(pos int) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("remove %d: %w", pos, err)
	}
	t := s.tasks[pos]
	row, _ := s.VisibleRowOf(pos)
	end := pos + 1
	if !t.IsSubtask {
		end = s.blockEnd(pos)
		for i := pos + 1; i < end; i++ {
			s.tasks[i].IsSubtask = false
		}
	}
	s.tasks = append(s.tasks[:pos], s.tasks[pos+1:]...)
	s.invalidate()
	c := Change{
		Op:      OpRemove,
		TaskID:  t.ID,
		Actual:  pos,
		Visible: row,
		First:   pos,
		Last:    end,
		Applied: true,
		Detail:  fmt.Sprintf("removed %q", t.Name),
	}
	if end-pos > 1 {
		c.Detail += fmt.Sprintf(", promoted %d subtasks", end-pos-1)
	}
	return c, nil
}

// RemoveWithSubtasks deletes the task at pos together with its subtask run.
func (s *Store) RemoveWithSubtasks(pos int) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("remove %d: %w", pos, err)
	}
	t := s.tasks[pos]
	row, _ := s.VisibleRowOf(pos)
	end := pos + 1
	if !t.IsSubtask {
		end = s.blockEnd(pos)
	}
	s.tasks = append(s.tasks[:pos], s.tasks[end:]...)
	s.invalidate()
	return Change{
		Op:      OpRemove,
		TaskID:  t.ID,
		Actual:  pos,
		Visible: row,
		First:   pos,
		Last:    end,
		Applied: true,
		Detail:  fmt.Sprintf("removed %q with %d subtasks", t.Name, end-pos-1),
	}, nil
}

// Move swaps the task at pos with its neighbouring sibling in dir. A parent
// moves with its whole block; a subtask only moves within its parent's run.
// At a boundary the store is unchanged and Change.Applied is false.
func (s *Store) Move(pos int, dir Direction) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("move %d: %w", pos, err)
	}
	t := s.tasks[pos]
	if t.IsSubtask {
		return s.moveSubtask(pos, dir), nil
	}

	start, end := pos, s.blockEnd(pos)
	var first, last, newPos int
	switch dir {
	case Up:
		if start == 0 {
			return s.noop(OpMove, pos), nil
		}
		prev := s.blockStart(start - 1)
		first, last = prev, end
		newPos = prev
	default:
		if end == len(s.tasks) {
			return s.noop(OpMove, pos), nil
		}
		next := s.blockEnd(end)
		first, last = start, next
		newPos = start + (next - end)
	}

	// Rotate [first, last) so the two blocks trade places.
	var a, b []*Task
	if dir == Up {
		a, b = s.tasks[first:start], s.tasks[start:end]
	} else {
		a, b = s.tasks[start:end], s.tasks[end:last]
	}
	rotated := make([]*Task, 0, last-first)
	rotated = append(rotated, b...)
	rotated = append(rotated, a...)
	copy(s.tasks[first:last], rotated)

	s.invalidate()
	return s.change(OpMove, newPos, first, last, fmt.Sprintf("moved %q %s", t.Name, dir)), nil
}

func (s *Store) moveSubtask(pos int, dir Direction) Change {
	other := pos - 1
	if dir == Down {
		other = pos + 1
	}
	if other < 0 || other >= len(s.tasks) || !s.tasks[other].IsSubtask {
		return s.noop(OpMove, pos)
	}
	s.tasks[pos], s.tasks[other] = s.tasks[other], s.tasks[pos]
	s.invalidate()
	first, last := min(pos, other), max(pos, other)+1
	return s.change(OpMove, other, first, last, fmt.Sprintf("moved %q %s", s.tasks[other].Name, dir))
}

// Duplicate inserts a copy of the task's scalar fields after it. The copy of
// a parent goes after the parent's whole block and has no subtasks; the copy
// of a subtask becomes its next sibling.
func (s *Store) Duplicate(pos int) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("duplicate %d: %w", pos, err)
	}
	src := s.tasks[pos]
	at := pos + 1
	if !src.IsSubtask {
		at = s.blockEnd(pos)
	}
	dup := src.duplicate()
	dup.ID = newID()
	s.insertAt(at, dup)
	return s.change(OpDuplicate, at, at, at+1, fmt.Sprintf("duplicated %q", src.Name)), nil
}

// ToggleCollapse flips the collapse flag of a parent. It is a no-op for
// subtasks and for tasks without subtasks.
func (s *Store) ToggleCollapse(pos int) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("toggle %d: %w", pos, err)
	}
	t := s.tasks[pos]
	if !t.IsParent() {
		return s.noop(OpToggleCollapse, pos), nil
	}
	t.Collapsed = !t.Collapsed
	s.invalidate()
	state := "expanded"
	if t.Collapsed {
		state = "collapsed"
	}
	return s.change(OpToggleCollapse, pos, pos, s.blockEnd(pos), fmt.Sprintf("%s %q", state, t.Name)), nil
}

// Extent returns the earliest valid start date and the latest valid end date
// over all tasks. ok is false when no task has a valid date.
func (s *Store) Extent() (start, end time.Time, ok bool) {
	for _, t := range s.tasks {
		if !t.StartDate.IsZero() && (start.IsZero() || t.StartDate.Before(start)) {
			start = t.StartDate
		}
		if !t.EndDate.IsZero() && (end.IsZero() || t.EndDate.After(end)) {
			end = t.EndDate
		}
	}
	if start.IsZero() && end.IsZero() {
		return start, end, false
	}
	if start.IsZero() {
		start = end
	}
	if end.IsZero() {
		end = start
	}
	return start, end, true
}

// settle makes a new task's duration agree with its dates.
func (s *Store) settle(t *Task) {
	switch {
	case t.StartDate.IsZero():
		t.StartDate, t.EndDate = calendar.Day(t.StartDate), calendar.Day(t.EndDate)
	case t.EndDate.IsZero() && t.Duration >= 1:
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldDuration))
		t.Duration = s.engine.DurationBetween(t.StartDate, t.EndDate)
	case t.EndDate.IsZero():
		t.EndDate = t.StartDate
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldEnd))
	default:
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldEnd))
	}
}

func (s *Store) insertAt(pos int, t *Task) {
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[pos+1:], s.tasks[pos:])
	s.tasks[pos] = t
	s.invalidate()
}

// invalidate drops the projection and re-derives Children from the runs.
// A top-level task left without subtasks is expanded.
func (s *Store) invalidate() {
	s.view = nil
	var parent *Task
	for _, t := range s.tasks {
		if t.IsSubtask {
			t.Children = nil
			if parent != nil {
				parent.Children = append(parent.Children, t.ID)
			}
			continue
		}
		t.Children = nil
		parent = t
	}
	for _, t := range s.tasks {
		if !t.IsSubtask && len(t.Children) == 0 {
			t.Collapsed = false
		}
	}
}

// blockStart returns the position of the top-level task owning pos.
func (s *Store) blockStart(pos int) int {
	for pos > 0 && s.tasks[pos].IsSubtask {
		pos--
	}
	return pos
}

// blockEnd returns the position just past the block starting at the
// top-level task at pos.
func (s *Store) blockEnd(pos int) int {
	end := pos + 1
	for end < len(s.tasks) && s.tasks[end].IsSubtask {
		end++
	}
	return end
}

func (s *Store) parentOf(pos int) int {
	if !s.tasks[pos].IsSubtask {
		return -1
	}
	if p := s.blockStart(pos); !s.tasks[p].IsSubtask {
		return p
	}
	return -1
}

func (s *Store) checkPos(pos int) error {
	if pos < 0 || pos >= len(s.tasks) {
		return fmt.Errorf("actual position %d of %d: %w", pos, len(s.tasks), ErrOutOfRange)
	}
	return nil
}

func (s *Store) change(op Op, pos, first, last int, detail string) Change {
	row, _ := s.VisibleRowOf(pos)
	return Change{
		Op:      op,
		TaskID:  s.tasks[pos].ID,
		Actual:  pos,
		Visible: row,
		First:   first,
		Last:    last,
		Detail:  detail,
		Applied: true,
	}
}

func (s *Store) noop(op Op, pos int) Change {
	c := s.change(op, pos, pos, pos, "")
	c.Applied = false
	return c
}

package project

import "fmt"

// projection maps visible rows to actual positions and back.
type projection struct {
	actual  []int // visible row -> actual position
	visible []int // actual position -> visible row, -1 when hidden
}

// buildProjection scans the sequence from the start, skipping the subtask
// run of every collapsed parent.
func buildProjection(tasks []*Task) *projection {
	p := &projection{
		actual:  make([]int, 0, len(tasks)),
		visible: make([]int, len(tasks)),
	}
	for i := range p.visible {
		p.visible[i] = -1
	}
	for i := 0; i < len(tasks); i++ {
		p.visible[i] = len(p.actual)
		p.actual = append(p.actual, i)
		if tasks[i].IsSubtask || !tasks[i].Collapsed {
			continue
		}
		for i+1 < len(tasks) && tasks[i+1].IsSubtask {
			i++
		}
	}
	return p
}

func (s *Store) projection() *projection {
	if s.view == nil {
		s.view = buildProjection(s.tasks)
	}
	return s.view
}

// VisibleCount returns the number of visible rows.
func (s *Store) VisibleCount() int {
	return len(s.projection().actual)
}

// VisibleRows returns the actual positions of the visible rows in order.
func (s *Store) VisibleRows() []int {
	return append([]int(nil), s.projection().actual...)
}

// TaskAtVisibleRow returns a copy of the task shown at visible row row.
func (s *Store) TaskAtVisibleRow(row int) (Task, error) {
	pos, err := s.ActualOf(row)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[pos].clone(), nil
}

// ActualOf translates a visible row to an actual position.
func (s *Store) ActualOf(row int) (int, error) {
	p := s.projection()
	if row < 0 || row >= len(p.actual) {
		return -1, fmt.Errorf("visible row %d of %d: %w", row, len(p.actual), ErrOutOfRange)
	}
	return p.actual[row], nil
}

// VisibleRowOf translates an actual position to a visible row. It returns
// -1 with a nil error when the task is hidden under a collapsed parent.
func (s *Store) VisibleRowOf(pos int) (int, error) {
	if err := s.checkPos(pos); err != nil {
		return -1, err
	}
	return s.projection().visible[pos], nil
}

package project

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortKey selects the field a Sort compares.
type SortKey int

const (
	SortByName SortKey = iota
	SortByStart
	SortByEnd
)

func (k SortKey) String() string {
	switch k {
	case SortByStart:
		return "start"
	case SortByEnd:
		return "end"
	default:
		return "name"
	}
}

// ParseSortKey accepts name, start (start_date) or end (end_date).
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "task", "":
		return SortByName, nil
	case "start", "start_date", "start-date":
		return SortByStart, nil
	case "end", "end_date", "end-date":
		return SortByEnd, nil
	default:
		return SortByName, fmt.Errorf("unknown sort key %q (want name, start or end)", s)
	}
}

// Sort reorders the sequence by key without splitting any block. Subtasks
// are sorted within their run, then blocks are sorted by their top-level
// task. Both sorts are stable.
func (s *Store) Sort(key SortKey, descending bool) Change {
	less := lessFunc(key)
	if descending {
		asc := less
		less = func(a, b *Task) bool { return asc(b, a) }
	}

	blocks := s.blocks()
	for _, b := range blocks {
		subs := b[1:]
		sort.SliceStable(subs, func(i, j int) bool { return less(subs[i], subs[j]) })
	}
	sort.SliceStable(blocks, func(i, j int) bool { return less(blocks[i][0], blocks[j][0]) })

	sorted := make([]*Task, 0, len(s.tasks))
	for _, b := range blocks {
		sorted = append(sorted, b...)
	}
	changed := false
	for i := range sorted {
		if sorted[i] != s.tasks[i] {
			changed = true
			break
		}
	}
	s.tasks = sorted
	s.invalidate()

	order := "ascending"
	if descending {
		order = "descending"
	}
	return Change{
		Op:      OpSort,
		Actual:  -1,
		Visible: -1,
		First:   0,
		Last:    len(s.tasks),
		Field:   key.String(),
		Detail:  fmt.Sprintf("sorted by %s %s", key, order),
		Applied: changed,
	}
}

// blocks partitions the sequence into top-level tasks with their runs. The
// returned slices are copies; a leading run without a parent forms its own
// block.
func (s *Store) blocks() [][]*Task {
	var out [][]*Task
	for i := 0; i < len(s.tasks); {
		end := s.blockEnd(i)
		out = append(out, append([]*Task(nil), s.tasks[i:end]...))
		i = end
	}
	return out
}

func lessFunc(key SortKey) func(a, b *Task) bool {
	switch key {
	case SortByStart:
		return func(a, b *Task) bool { return dateLess(a.StartDate, b.StartDate) }
	case SortByEnd:
		return func(a, b *Task) bool { return dateLess(a.EndDate, b.EndDate) }
	default:
		return func(a, b *Task) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
}

// dateLess orders missing dates before every valid date.
func dateLess(a, b time.Time) bool {
	return a.Before(b)
}

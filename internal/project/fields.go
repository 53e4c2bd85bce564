package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

// Field names accepted by SetField.
const (
	FieldName       = "name"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldDuration   = "duration"
	FieldDedication = "dedication"
	FieldColor      = "color"
	FieldNotes      = "notes"
)

// EditableFields lists the fields accepted by SetField.
func EditableFields() []string {
	return []string{FieldName, FieldStartDate, FieldEndDate, FieldDuration, FieldDedication, FieldColor, FieldNotes}
}

// SetName renames the task at pos.
func (s *Store) SetName(pos int, name string) (Change, error) {
	return s.edit(pos, FieldName, func(t *Task) error {
		t.Name = name
		return nil
	})
}

// SetStartDate parses dd/mm/yyyy text into the start date, clamps the end
// date and recomputes the duration. Invalid text leaves the task unchanged.
func (s *Store) SetStartDate(pos int, text string) (Change, error) {
	return s.edit(pos, FieldStartDate, func(t *Task) error {
		d, err := calendar.ParseDate(text)
		if err != nil {
			return ErrInvalidDate
		}
		t.StartDate = d
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldStart))
		return nil
	})
}

// SetEndDate parses dd/mm/yyyy text into the end date, clamps it to the
// start date and recomputes the duration. Invalid text leaves the task
// unchanged.
func (s *Store) SetEndDate(pos int, text string) (Change, error) {
	return s.edit(pos, FieldEndDate, func(t *Task) error {
		d, err := calendar.ParseDate(text)
		if err != nil {
			return ErrInvalidDate
		}
		t.EndDate = d
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldEnd))
		return nil
	})
}

// SetDuration parses a positive working-day count and recomputes the end
// date from the start date. Non-numeric or sub-1 input is ignored, as is a
// count the calendar cannot reach within calendar.MaxScanDays.
func (s *Store) SetDuration(pos int, text string) (Change, error) {
	return s.edit(pos, FieldDuration, func(t *Task) error {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 1 {
			return ErrInvalidDuration
		}
		t.Duration = n
		t.setDates(s.engine.Normalize(t.dates(), calendar.FieldDuration))
		if !t.StartDate.IsZero() && s.engine.DurationBetween(t.StartDate, t.EndDate) != n {
			return ErrInvalidDuration
		}
		return nil
	})
}

// SetDedication stores the dedication percentage as given.
func (s *Store) SetDedication(pos int, percent int) (Change, error) {
	return s.edit(pos, FieldDedication, func(t *Task) error {
		t.Dedication = percent
		return nil
	})
}

// SetColor stores an opaque display colour.
func (s *Store) SetColor(pos int, color string) (Change, error) {
	return s.edit(pos, FieldColor, func(t *Task) error {
		t.Color = color
		return nil
	})
}

// SetNotes stores opaque note text.
func (s *Store) SetNotes(pos int, notes string) (Change, error) {
	return s.edit(pos, FieldNotes, func(t *Task) error {
		t.Notes = notes
		return nil
	})
}

// SetField dispatches a text edit by field name. Dedication text that is not
// an integer is ignored like other invalid input.
func (s *Store) SetField(pos int, field, value string) (Change, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldName:
		return s.SetName(pos, value)
	case FieldStartDate, "start":
		return s.SetStartDate(pos, value)
	case FieldEndDate, "end":
		return s.SetEndDate(pos, value)
	case FieldDuration:
		return s.SetDuration(pos, value)
	case FieldDedication:
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%")))
		if err != nil {
			if err := s.checkPos(pos); err != nil {
				return Change{}, err
			}
			c := s.noop(OpEdit, pos)
			c.Field = FieldDedication
			c.Ignored = fmt.Errorf("dedication %q is not an integer", value)
			return c, nil
		}
		return s.SetDedication(pos, n)
	case FieldColor:
		return s.SetColor(pos, value)
	case FieldNotes:
		return s.SetNotes(pos, value)
	default:
		return Change{}, fmt.Errorf("unknown field %q (want one of: %s)", field, strings.Join(EditableFields(), ", "))
	}
}

// edit applies fn to a scratch copy of the task and commits it only when fn
// succeeds, so a rejected edit never leaves a partial change behind.
func (s *Store) edit(pos int, field string, fn func(*Task) error) (Change, error) {
	if err := s.checkPos(pos); err != nil {
		return Change{}, fmt.Errorf("edit %s: %w", field, err)
	}
	scratch := s.tasks[pos].clone()
	if err := fn(&scratch); err != nil {
		c := s.noop(OpEdit, pos)
		c.Field = field
		c.Ignored = err
		return c, nil
	}
	*s.tasks[pos] = scratch
	c := s.change(OpEdit, pos, pos, pos+1, fmt.Sprintf("set %s of %q", field, scratch.Name))
	c.Field = field
	return c, nil
}

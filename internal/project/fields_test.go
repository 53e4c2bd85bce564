package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

func taskAt(t *testing.T, s *Store, pos int) Task {
	t.Helper()
	task, err := s.Task(pos)
	require.NoError(t, err)
	return task
}

func TestDateEdits(t *testing.T) {
	s := build(t, "Design")

	_, err := s.SetStartDate(0, "01/01/2024")
	require.NoError(t, err)
	c, err := s.SetDuration(0, "5")
	require.NoError(t, err)
	assert.True(t, c.Applied)
	assert.Equal(t, FieldDuration, c.Field)
	assert.Equal(t, "05/01/2024", calendar.FormatDate(taskAt(t, s, 0).EndDate))

	_, err = s.SetEndDate(0, "08/01/2024")
	require.NoError(t, err)
	assert.Equal(t, 6, taskAt(t, s, 0).Duration)

	// Moving the start past the end drags the end along.
	_, err = s.SetStartDate(0, "10/01/2024")
	require.NoError(t, err)
	task := taskAt(t, s, 0)
	assert.Equal(t, "10/01/2024", calendar.FormatDate(task.EndDate))
	assert.Equal(t, 1, task.Duration)

	// An end before the start is clamped to the start.
	_, err = s.SetEndDate(0, "02/01/2024")
	require.NoError(t, err)
	task = taskAt(t, s, 0)
	assert.Equal(t, "10/01/2024", calendar.FormatDate(task.EndDate))
	assert.Equal(t, 1, task.Duration)
}

func TestDurationEditIsIdempotent(t *testing.T) {
	s := build(t, "Build")
	_, err := s.SetStartDate(0, "01/01/2024")
	require.NoError(t, err)
	_, err = s.SetEndDate(0, "08/01/2024")
	require.NoError(t, err)

	before := taskAt(t, s, 0)
	_, err = s.SetDuration(0, "6")
	require.NoError(t, err)
	assert.Equal(t, before.EndDate, taskAt(t, s, 0).EndDate)
}

func TestInvalidEditsAreIgnored(t *testing.T) {
	s := build(t, "Test")
	_, err := s.SetStartDate(0, "01/01/2024")
	require.NoError(t, err)
	_, err = s.SetDuration(0, "3")
	require.NoError(t, err)
	before := taskAt(t, s, 0)

	tests := []struct {
		field, value string
		want         error
	}{
		{FieldStartDate, "2024-01-01", ErrInvalidDate},
		{FieldStartDate, "31/02/2024", ErrInvalidDate},
		{FieldEndDate, "", ErrInvalidDate},
		{FieldDuration, "abc", ErrInvalidDuration},
		{FieldDuration, "0", ErrInvalidDuration},
		{FieldDuration, "-4", ErrInvalidDuration},
		{FieldStartDate, "01/01/0001", ErrInvalidDate},
		{FieldEndDate, "01/01/0001", ErrInvalidDate},
		{FieldDuration, "30000", ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			c, err := s.SetField(0, tt.field, tt.value)
			require.NoError(t, err)
			assert.False(t, c.Applied)
			assert.True(t, errors.Is(c.Ignored, tt.want), "got %v", c.Ignored)
			assert.Equal(t, before, taskAt(t, s, 0))
		})
	}

	c, err := s.SetField(0, FieldDedication, "lots")
	require.NoError(t, err)
	assert.False(t, c.Applied)
	assert.Error(t, c.Ignored)
}

func TestUnreachableDurationOnInsert(t *testing.T) {
	s := NewStore(calendar.NewEngine(calendar.Weekdays{}))
	start, err := calendar.ParseDate("01/01/2024")
	require.NoError(t, err)
	_, err = s.Append(Task{Name: "Forever", StartDate: start, Duration: 30000})
	require.NoError(t, err)

	task := taskAt(t, s, 0)
	assert.Equal(t, s.Engine().DurationBetween(task.StartDate, task.EndDate), task.Duration)
}

func TestSetField(t *testing.T) {
	s := build(t, "Old")

	_, err := s.SetField(0, "Name", "New")
	require.NoError(t, err)
	_, err = s.SetField(0, FieldDedication, "75%")
	require.NoError(t, err)
	_, err = s.SetField(0, FieldColor, "#00ff00")
	require.NoError(t, err)
	_, err = s.SetField(0, FieldNotes, "needs review")
	require.NoError(t, err)
	_, err = s.SetField(0, "start", "03/01/2024")
	require.NoError(t, err)

	task := taskAt(t, s, 0)
	assert.Equal(t, "New", task.Name)
	assert.Equal(t, 75, task.Dedication)
	assert.Equal(t, "#00ff00", task.Color)
	assert.Equal(t, "needs review", task.Notes)
	assert.Equal(t, "03/01/2024", calendar.FormatDate(task.StartDate))

	_, err = s.SetField(0, "priority", "high")
	assert.Error(t, err)

	_, err = s.SetField(3, FieldName, "x")
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestEditUsesStoreCalendar(t *testing.T) {
	// 01/05/2024 is Labour Day in Colombia.
	s := NewStore(calendar.NewEngine(calendar.NewColombia()))
	_, err := s.Append(Task{Name: "Sprint"})
	require.NoError(t, err)
	_, err = s.SetStartDate(0, "30/04/2024")
	require.NoError(t, err)
	_, err = s.SetDuration(0, "2")
	require.NoError(t, err)
	assert.Equal(t, "02/05/2024", calendar.FormatDate(taskAt(t, s, 0).EndDate))
}

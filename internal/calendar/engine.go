package calendar

import (
	"errors"
	"time"
)

// ErrInvalidDuration reports a non-numeric or non-positive duration edit.
var ErrInvalidDuration = errors.New("invalid duration")

// MaxScanDays caps the forward scan in EndFromDuration (about 100 years).
const MaxScanDays = 36525

// Field names the date field that was edited.
type Field int

const (
	FieldStart Field = iota
	FieldEnd
	FieldDuration
)

func (f Field) String() string {
	switch f {
	case FieldStart:
		return "start_date"
	case FieldEnd:
		return "end_date"
	case FieldDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// Dates is the scheduling triple kept consistent by the Engine.
type Dates struct {
	Start    time.Time
	End      time.Time
	Duration int
}

// Engine converts between start, end and working-day duration.
type Engine struct {
	provider Provider
}

// NewEngine returns an engine that owns provider.
func NewEngine(provider Provider) *Engine {
	if provider == nil {
		provider = Weekdays{}
	}
	return &Engine{provider: provider}
}

// Provider returns the engine's working-day provider.
func (e *Engine) Provider() Provider {
	return e.provider
}

// IsWorkingDay reports whether d is a working day under the engine's provider.
func (e *Engine) IsWorkingDay(d time.Time) bool {
	return !d.IsZero() && e.provider.IsWorkingDay(Day(d))
}

// DurationBetween counts working days in the inclusive range [start, end].
// It returns 0 if either date is invalid or end is before start.
func (e *Engine) DurationBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0
	}
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if e.provider.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// EndFromDuration walks forward one calendar day at a time from start until
// duration working days have been counted; start counts as day 1 when it is
// a working day. It returns start unchanged when duration < 1, start is
// invalid, or no end is found within MaxScanDays.
//
// The scan is linear in calendar days, which suits schedules measured in
// weeks or months.
func (e *Engine) EndFromDuration(start time.Time, duration int) time.Time {
	if start.IsZero() || duration < 1 {
		return start
	}
	start = Day(start)
	counted := 0
	d := start
	for i := 0; i < MaxScanDays; i++ {
		if e.provider.IsWorkingDay(d) {
			counted++
			if counted == duration {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
	return start
}

// Normalize settles d after an edit to field.
//
// A start or end edit clamps the other date so that end >= start, then
// recomputes the duration. A duration edit recomputes the end from the start
// unless the current end already spans exactly that many working days.
// Normalize is idempotent on consistent input.
func (e *Engine) Normalize(d Dates, field Field) Dates {
	d.Start, d.End = Day(d.Start), Day(d.End)
	switch field {
	case FieldStart, FieldEnd:
		if !d.Start.IsZero() && !d.End.IsZero() && d.End.Before(d.Start) {
			d.End = d.Start
		}
		d.Duration = e.DurationBetween(d.Start, d.End)
	case FieldDuration:
		if d.Start.IsZero() {
			return d
		}
		if !d.End.IsZero() && e.DurationBetween(d.Start, d.End) == d.Duration {
			return d
		}
		d.End = e.EndFromDuration(d.Start, d.Duration)
	}
	return d
}

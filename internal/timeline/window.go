// Package timeline derives the date window and horizontal scale used to
// render a schedule at a given zoom level.
package timeline

import (
	"math"
	"time"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

// MinPixelsPerDay is the floor applied to Window.PixelsPerDay.
const MinPixelsPerDay = 0.1

// EmptyProjectDays is the window length used at Complete zoom when no task
// has a date.
const EmptyProjectDays = 30

// Extent is the date range covered by a task set. The zero Extent means no
// task has a valid date.
type Extent struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the extent carries no dates.
func (e Extent) Empty() bool {
	return e.Start.IsZero() && e.End.IsZero()
}

// Window is the visible date range and its scale.
type Window struct {
	Start        time.Time
	End          time.Time
	PixelsPerDay float64
}

// Compute returns the window for zoom. At Complete zoom it spans the extent,
// or today plus EmptyProjectDays when the extent is empty. Fixed-span levels
// start an eighth of their span before today (a week for OneMonth). The
// window always covers at least two days.
func Compute(extent Extent, today time.Time, zoom Zoom, width int) Window {
	today = calendar.Day(today)
	var w Window
	switch {
	case zoom.SpanDays() > 0:
		w.Start = calendar.AddDays(today, -zoom.leadInDays())
		w.End = calendar.AddDays(w.Start, zoom.SpanDays())
	case extent.Empty():
		w.Start = today
		w.End = calendar.AddDays(today, EmptyProjectDays)
	default:
		w.Start, w.End = calendar.Day(extent.Start), calendar.Day(extent.End)
		if w.Start.IsZero() {
			w.Start = w.End
		}
		if w.End.IsZero() {
			w.End = w.Start
		}
	}
	if !w.End.After(w.Start) {
		w.End = calendar.AddDays(w.Start, 1)
	}
	w.PixelsPerDay = math.Max(MinPixelsPerDay, float64(width)/float64(w.Days()))
	return w
}

// Days returns the number of calendar days in the window, both ends
// included.
func (w Window) Days() int {
	return calendar.DaysBetween(w.Start, w.End) + 1
}

// Offset returns the horizontal position of d relative to the window start.
// Dates before the start give negative offsets.
func (w Window) Offset(d time.Time) float64 {
	return float64(calendar.DaysBetween(w.Start, d)) * w.PixelsPerDay
}

// Span returns the clipped [from, to) pixel columns covered by the inclusive
// date range [start, end]. ok is false when the range falls outside the
// window or either date is missing.
func (w Window) Span(start, end time.Time) (from, to int, ok bool) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0, 0, false
	}
	if end.Before(w.Start) || start.After(w.End) {
		return 0, 0, false
	}
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	from = int(math.Floor(w.Offset(start)))
	to = int(math.Ceil(w.Offset(calendar.AddDays(end, 1))))
	if to <= from {
		to = from + 1
	}
	return from, to, true
}

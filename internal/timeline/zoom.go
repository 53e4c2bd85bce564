package timeline

import (
	"fmt"
	"strings"

	"github.com/Rudull/baby-project-manager/internal/utils"
)

// Zoom is a timeline zoom level. Levels are ordered from coarsest
// (Complete) to finest (OneMonth).
type Zoom int

const (
	Complete Zoom = iota
	Year
	SixMonths
	ThreeMonths
	OneMonth
)

var zoomNames = [...]string{
	Complete:    "complete",
	Year:        "year",
	SixMonths:   "six_month",
	ThreeMonths: "three_month",
	OneMonth:    "one_month",
}

// Levels returns every zoom level from coarsest to finest.
func Levels() []Zoom {
	return []Zoom{Complete, Year, SixMonths, ThreeMonths, OneMonth}
}

func (z Zoom) String() string {
	if z < Complete || z > OneMonth {
		return fmt.Sprintf("zoom(%d)", int(z))
	}
	return zoomNames[z]
}

// In returns the next finer level, or z itself at OneMonth.
func (z Zoom) In() Zoom {
	if z >= OneMonth {
		return OneMonth
	}
	return z + 1
}

// Out returns the next coarser level, or z itself at Complete.
func (z Zoom) Out() Zoom {
	if z <= Complete {
		return Complete
	}
	return z - 1
}

// SpanDays returns the nominal window length in days of a fixed-span level,
// or 0 for Complete.
func (z Zoom) SpanDays() int {
	switch z {
	case Year:
		return 365
	case SixMonths:
		return 180
	case ThreeMonths:
		return 90
	case OneMonth:
		return 30
	default:
		return 0
	}
}

// leadInDays is how far before today a fixed-span window starts.
func (z Zoom) leadInDays() int {
	if z == OneMonth {
		return 7
	}
	return int(float64(z.SpanDays()) * 0.125)
}

// ParseZoom accepts a level name in any case with underscores, hyphens or
// spaces ("six_month", "Six Month") and the short forms 1y, 6m, 3m, 1m.
func ParseZoom(s string) (Zoom, error) {
	switch utils.NormalizeKey(s) {
	case "complete", "all", "full", "":
		return Complete, nil
	case "year", "1y":
		return Year, nil
	case "six-month", "six-months", "6m":
		return SixMonths, nil
	case "three-month", "three-months", "3m":
		return ThreeMonths, nil
	case "one-month", "month", "1m":
		return OneMonth, nil
	}
	names := make([]string, 0, len(zoomNames))
	for _, n := range zoomNames {
		names = append(names, n)
	}
	return Complete, fmt.Errorf("unknown zoom level %q (want one of: %s)", s, strings.Join(names, ", "))
}

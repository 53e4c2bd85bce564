package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Provider classifies calendar dates as working or non-working days.
type Provider interface {
	// IsWorkingDay reports whether d is a working day. d is a midnight UTC date.
	IsWorkingDay(d time.Time) bool
	// Name returns the ruleset name.
	Name() string
}

// Ruleset names accepted by NewProvider.
const (
	RulesetEveryDay = "everyday"
	RulesetWeekdays = "weekdays"
	RulesetColombia = "co"
)

// Rulesets returns the known ruleset names in display order.
func Rulesets() []string {
	return []string{RulesetEveryDay, RulesetWeekdays, RulesetColombia}
}

// EveryDay treats every date as a working day.
type EveryDay struct{}

func (EveryDay) IsWorkingDay(d time.Time) bool { return !d.IsZero() }
func (EveryDay) Name() string                  { return RulesetEveryDay }

// Weekdays treats Monday through Friday as working days.
type Weekdays struct{}

func (Weekdays) IsWorkingDay(d time.Time) bool {
	if d.IsZero() {
		return false
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

func (Weekdays) Name() string { return RulesetWeekdays }

// Holidays removes an explicit set of dates from a base provider.
type Holidays struct {
	Base  Provider
	dates map[time.Time]struct{}
}

// NewHolidays wraps base so that every date in dates is a non-working day.
func NewHolidays(base Provider, dates []time.Time) *Holidays {
	h := &Holidays{Base: base, dates: make(map[time.Time]struct{}, len(dates))}
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		h.dates[Day(d)] = struct{}{}
	}
	return h
}

func (h *Holidays) IsWorkingDay(d time.Time) bool {
	if _, ok := h.dates[Day(d)]; ok {
		return false
	}
	return h.Base.IsWorkingDay(d)
}

func (h *Holidays) Name() string { return h.Base.Name() }

// Dates returns the extra holidays in ascending order.
func (h *Holidays) Dates() []time.Time {
	out := make([]time.Time, 0, len(h.dates))
	for d := range h.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// NewProvider builds a provider for the named ruleset. Extra holidays, if
// any, are layered on top. Names are matched case-insensitively.
func NewProvider(name string, extra []time.Time) (Provider, error) {
	var base Provider
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RulesetEveryDay, "every-day", "all":
		base = EveryDay{}
	case RulesetWeekdays, "", "weekday", "mon-fri":
		base = Weekdays{}
	case RulesetColombia, "colombia":
		base = NewColombia()
	default:
		return nil, fmt.Errorf("unknown calendar ruleset %q (want one of: %s)",
			name, strings.Join(Rulesets(), ", "))
	}
	if len(extra) == 0 {
		return base, nil
	}
	return NewHolidays(base, extra), nil
}

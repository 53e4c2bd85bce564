package calendar

import (
	"sort"
	"time"
)

// Colombia is the Colombian working-day calendar: weekdays minus national
// public holidays. Holiday sets are computed once per year and cached on the
// instance; a Colombia value is not safe for concurrent use.
type Colombia struct {
	years map[int]map[time.Time]struct{}
}

// NewColombia returns an empty-cache Colombian calendar.
func NewColombia() *Colombia {
	return &Colombia{years: make(map[int]map[time.Time]struct{})}
}

func (c *Colombia) Name() string { return RulesetColombia }

func (c *Colombia) IsWorkingDay(d time.Time) bool {
	if !(Weekdays{}).IsWorkingDay(d) {
		return false
	}
	_, holiday := c.holidays(d.Year())[Day(d)]
	return !holiday
}

// Holidays returns the public holidays of year in ascending order.
func (c *Colombia) Holidays(year int) []time.Time {
	set := c.holidays(year)
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (c *Colombia) holidays(year int) map[time.Time]struct{} {
	if set, ok := c.years[year]; ok {
		return set
	}
	if c.years == nil {
		c.years = make(map[int]map[time.Time]struct{})
	}
	set := colombianHolidays(year)
	c.years[year] = set
	return set
}

func colombianHolidays(year int) map[time.Time]struct{} {
	date := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}
	set := make(map[time.Time]struct{}, 18)
	add := func(d time.Time) { set[d] = struct{}{} }

	for _, d := range []time.Time{
		date(time.January, 1),
		date(time.May, 1),
		date(time.July, 20),
		date(time.August, 7),
		date(time.December, 8),
		date(time.December, 25),
	} {
		add(d)
	}

	// Moved to the following Monday when they fall on another weekday.
	for _, d := range []time.Time{
		date(time.January, 6),
		date(time.March, 19),
		date(time.June, 29),
		date(time.August, 15),
		date(time.October, 12),
		date(time.November, 1),
		date(time.November, 11),
	} {
		add(nextMonday(d))
	}

	easter := easterSunday(year)
	add(AddDays(easter, -3)) // Holy Thursday
	add(AddDays(easter, -2)) // Good Friday
	add(nextMonday(AddDays(easter, 39)))
	add(nextMonday(AddDays(easter, 60)))
	add(nextMonday(AddDays(easter, 68)))
	return set
}

func nextMonday(d time.Time) time.Time {
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return AddDays(d, offset)
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Package calendar classifies working days and keeps task dates and
// durations consistent.
//
// A Provider answers whether a single date is a working day. The Engine is
// built on a Provider and converts between a start date, an end date and a
// duration counted in working days:
//
//	engine := calendar.NewEngine(calendar.Weekdays{})
//	end := engine.EndFromDuration(start, 5)       // fifth working day
//	n := engine.DurationBetween(start, end)       // 5
//
// # Dates
//
// Dates are time.Time values at midnight UTC. The zero time.Time means "no
// valid date". Text is exchanged as dd/mm/yyyy (see ParseDate and
// FormatDate).
//
// # Rulesets
//
//   - "everyday": every date is a working day
//   - "weekdays": Monday through Friday
//   - "co": weekdays minus Colombian public holidays
//
// Extra holidays may be layered on top of any ruleset with NewProvider.
package calendar

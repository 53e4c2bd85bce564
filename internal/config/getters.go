package config

import (
	"fmt"
	"time"

	"github.com/Rudull/baby-project-manager/internal/calendar"
	"github.com/Rudull/baby-project-manager/internal/timeline"
)

// HolidayDates parses Calendar.Holidays.
func (c *Config) HolidayDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Calendar.Holidays))
	for _, text := range c.Calendar.Holidays {
		d, err := calendar.ParseDate(text)
		if err != nil {
			return nil, fmt.Errorf("calendar.holidays: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Provider builds the working-day provider named by Calendar.Ruleset with
// the configured extra holidays.
func (c *Config) Provider() (calendar.Provider, error) {
	extra, err := c.HolidayDates()
	if err != nil {
		return nil, err
	}
	p, err := calendar.NewProvider(c.Calendar.Ruleset, extra)
	if err != nil {
		return nil, fmt.Errorf("calendar.ruleset: %w", err)
	}
	return p, nil
}

// Engine returns a business-day engine over the configured provider.
func (c *Config) Engine() (*calendar.Engine, error) {
	p, err := c.Provider()
	if err != nil {
		return nil, err
	}
	return calendar.NewEngine(p), nil
}

// Zoom parses Timeline.Zoom.
func (c *Config) Zoom() (timeline.Zoom, error) {
	z, err := timeline.ParseZoom(c.Timeline.Zoom)
	if err != nil {
		return z, fmt.Errorf("timeline.zoom: %w", err)
	}
	return z, nil
}

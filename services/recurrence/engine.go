package recurrence

import (
	"strings"
	"time"

	"facilityops/services/catalog"
)

// Engine decides whether a template is due on a given calendar date. It is
// pure: no I/O, no clock access; callers pass the date in.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// IsDue applies the explicit day-of-week gate first, then the frequency rule.
// The gate applies regardless of frequency: a weekly template constrained to
// "mon" is due on Mondays only, whatever the week parity.
func (e *Engine) IsDue(tpl *catalog.RoutineTemplate, day time.Time) bool {
	weekday := weekdayAbbrev(day)

	if strings.TrimSpace(tpl.DaysOfWeek) != "" {
		if !containsDay(parseDayList(tpl.DaysOfWeek), weekday) {
			return false
		}
	}

	switch ParseFrequency(tpl.Frequency) {
	case FrequencyDaily:
		return true
	case FrequencyWeekdays:
		wd := day.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case FrequencyWeekends:
		wd := day.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case FrequencyWeekly:
		// The day-of-week gate above already selected the day.
		return true
	case FrequencyBiWeekly:
		// ISO weeks are Monday-anchored; due on even week numbers.
		_, week := day.ISOWeek()
		return week%2 == 0
	case FrequencyMonthly:
		return day.Day() == 1
	case FrequencyQuarterly:
		if day.Day() != 1 {
			return false
		}
		switch day.Month() {
		case time.January, time.April, time.July, time.October:
			return true
		}
		return false
	case FrequencyYearly:
		return day.Day() == 1 && day.Month() == time.January
	case FrequencyCustomDays:
		return containsDay(parseDayList(tpl.Frequency), weekday)
	}

	// Unrecognized frequency: never due.
	return false
}

func weekdayAbbrev(day time.Time) string {
	return strings.ToLower(day.Weekday().String()[:3])
}

func containsDay(days []string, weekday string) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

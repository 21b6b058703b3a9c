package recurrence

import (
	"strings"
)

// Frequency is the closed vocabulary of recurrence specifications. Stored
// template values outside the vocabulary parse to FrequencyUnknown, which is
// never due; a typo must not silently generate work.
type Frequency int

const (
	FrequencyUnknown Frequency = iota
	FrequencyDaily
	FrequencyWeekdays
	FrequencyWeekends
	FrequencyWeekly
	FrequencyBiWeekly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyYearly
	FrequencyCustomDays // comma list of weekday abbreviations, e.g. "mon,wed,fri"
)

// ParseFrequency maps a stored recurrence string onto the vocabulary. A value
// that is not a keyword but looks like a comma list of weekday abbreviations
// is treated as a custom day list.
func ParseFrequency(raw string) Frequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily":
		return FrequencyDaily
	case "weekdays":
		return FrequencyWeekdays
	case "weekends":
		return FrequencyWeekends
	case "weekly":
		return FrequencyWeekly
	case "bi-weekly", "biweekly":
		return FrequencyBiWeekly
	case "monthly":
		return FrequencyMonthly
	case "quarterly":
		return FrequencyQuarterly
	case "yearly":
		return FrequencyYearly
	}

	if days := parseDayList(raw); len(days) > 0 {
		return FrequencyCustomDays
	}

	return FrequencyUnknown
}

var weekdayAbbrevs = map[string]struct{}{
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}

// parseDayList splits a comma list of weekday abbreviations. It returns nil
// when any entry is not a known abbreviation, so malformed lists fall through
// to FrequencyUnknown rather than matching a partial set.
func parseDayList(raw string) []string {
	parts := strings.Split(raw, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		day := strings.ToLower(strings.TrimSpace(p))
		if day == "" {
			continue
		}
		if _, ok := weekdayAbbrevs[day]; !ok {
			return nil
		}
		days = append(days, day)
	}
	return days
}

package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"facilityops/services/catalog"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDueFrequencyTable(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name      string
		frequency string
		days      string
		day       time.Time
		want      bool
	}{
		{"daily always due", "daily", "", date(2024, time.March, 5), true},
		{"daily due on weekend too", "daily", "", date(2024, time.March, 2), true},

		{"weekdays due monday", "weekdays", "", date(2024, time.March, 4), true},
		{"weekdays due friday", "weekdays", "", date(2024, time.March, 8), true},
		{"weekdays not due saturday", "weekdays", "", date(2024, time.March, 2), false},
		{"weekdays not due sunday", "weekdays", "", date(2024, time.March, 3), false},

		{"weekends due saturday", "weekends", "", date(2024, time.March, 2), true},
		{"weekends due sunday", "weekends", "", date(2024, time.March, 3), true},
		{"weekends not due wednesday", "weekends", "", date(2024, time.March, 6), false},

		{"weekly due on gated day", "weekly", "mon", date(2024, time.March, 4), true},
		{"weekly not due off gated day", "weekly", "mon", date(2024, time.March, 5), false},

		// ISO week 10 starts 2024-03-04; week 11 starts 2024-03-11.
		{"bi-weekly due on even iso week", "bi-weekly", "", date(2024, time.March, 4), true},
		{"bi-weekly not due on odd iso week", "bi-weekly", "", date(2024, time.March, 11), false},
		{"biweekly spelling accepted", "biweekly", "", date(2024, time.March, 4), true},

		{"monthly due on the 1st", "monthly", "", date(2024, time.March, 1), true},
		{"monthly not due on the 2nd", "monthly", "", date(2024, time.March, 2), false},

		{"quarterly due on apr 1", "quarterly", "", date(2024, time.April, 1), true},
		{"quarterly due on oct 1", "quarterly", "", date(2024, time.October, 1), true},
		{"quarterly not due on mar 1", "quarterly", "", date(2024, time.March, 1), false},
		{"quarterly not due on apr 2", "quarterly", "", date(2024, time.April, 2), false},

		{"yearly due on jan 1", "yearly", "", date(2024, time.January, 1), true},
		{"yearly not due on feb 1", "yearly", "", date(2024, time.February, 1), false},
		{"yearly not due on jan 2", "yearly", "", date(2024, time.January, 2), false},

		{"custom list due on listed day", "mon,wed,fri", "", date(2024, time.March, 6), true},
		{"custom list not due on unlisted day", "mon,wed,fri", "", date(2024, time.March, 5), false},
		{"custom list tolerates spaces and case", "Mon, Wed", "", date(2024, time.March, 6), true},

		{"unrecognized frequency never due", "fortnightly", "", date(2024, time.March, 4), false},
		{"empty frequency never due", "", "", date(2024, time.March, 4), false},
		{"malformed day list never due", "mon,frx", "", date(2024, time.March, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := &catalog.RoutineTemplate{Frequency: tt.frequency, DaysOfWeek: tt.days}
			require.Equal(t, tt.want, engine.IsDue(tpl, tt.day))
		})
	}
}

func TestDayOfWeekGatePrecedence(t *testing.T) {
	engine := NewEngine()

	// The explicit day set gates every frequency, daily included.
	tpl := &catalog.RoutineTemplate{Frequency: "daily", DaysOfWeek: "mon"}
	require.True(t, engine.IsDue(tpl, date(2024, time.March, 4)))
	require.False(t, engine.IsDue(tpl, date(2024, time.March, 5)))

	// Weekly with days=["mon"] is due on Mondays of both week parities.
	weekly := &catalog.RoutineTemplate{Frequency: "weekly", DaysOfWeek: "mon"}
	require.True(t, engine.IsDue(weekly, date(2024, time.March, 4)))
	require.True(t, engine.IsDue(weekly, date(2024, time.March, 11)))
	require.False(t, engine.IsDue(weekly, date(2024, time.March, 12)))
}

func TestParseFrequency(t *testing.T) {
	require.Equal(t, FrequencyDaily, ParseFrequency("daily"))
	require.Equal(t, FrequencyBiWeekly, ParseFrequency("bi-weekly"))
	require.Equal(t, FrequencyBiWeekly, ParseFrequency("biweekly"))
	require.Equal(t, FrequencyCustomDays, ParseFrequency("mon,wed,fri"))
	require.Equal(t, FrequencyUnknown, ParseFrequency("every-other-day"))
	require.Equal(t, FrequencyUnknown, ParseFrequency(""))
}

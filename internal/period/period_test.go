package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndsOf_Monday(t *testing.T) {
	ends, err := EndsOf("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", ends.WeekEnd)
	assert.Equal(t, "2024-01-31", ends.MonthEnd)
}

func TestWeekEnd(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-01-13", "2024-01-13"}, // Saturday
		{"2024-01-14", "2024-01-20"}, // Sunday
		{"2024-01-15", "2024-01-20"}, // Monday
		{"2024-01-19", "2024-01-20"}, // Friday
		{"2024-12-29", "2025-01-04"}, // Sunday across year end
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			ends, err := EndsOf(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ends.WeekEnd)
		})
	}
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-02-10", "2024-02-29"}, // leap year
		{"2023-02-10", "2023-02-28"},
		{"2024-12-01", "2024-12-31"}, // December rollover
		{"2024-04-30", "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			ends, err := EndsOf(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ends.MonthEnd)
		})
	}
}

func TestEndsProperties(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)

		we := WeekEnd(d)
		assert.Equal(t, time.Saturday, we.Weekday())
		assert.False(t, we.Before(d))
		assert.False(t, we.After(d.AddDate(0, 0, 6)))

		me := MonthEnd(d)
		assert.Equal(t, d.Month(), me.Month())
		assert.Equal(t, d.Year(), me.Year())
		assert.NotEqual(t, d.Month(), me.AddDate(0, 0, 1).Month())
	}
}

func TestEndsOf_Malformed(t *testing.T) {
	_, err := EndsOf("2024-13-01")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "2024-13-01", pe.Input)
}

func TestDayOf(t *testing.T) {
	day, err := DayOf("2024-01-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", day)

	_, err = DayOf("2024-01")
	assert.Error(t, err)

	_, err = DayOf("yesterdayXXXX")
	assert.Error(t, err)
}

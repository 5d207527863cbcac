package period

import (
	"fmt"
	"time"
)

// DayLayout is the ISO calendar-date layout used for days and period ends.
const DayLayout = "2006-01-02"

// ParseError reports a date that could not be read as YYYY-MM-DD.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Ends holds the last day of the Saturday-ending week and of the calendar
// month that contain a date.
type Ends struct {
	WeekEnd  string `json:"weekEnd"`
	MonthEnd string `json:"monthEnd"`
}

// DayOf returns the calendar-day part of an ISO-8601 timestamp. The time and
// zone are ignored, so "2024-01-15T23:30:00-05:00" is "2024-01-15".
func DayOf(timestamp string) (string, error) {
	if len(timestamp) < len(DayLayout) {
		return "", &ParseError{Input: timestamp, Err: fmt.Errorf("too short")}
	}
	day := timestamp[:len(DayLayout)]
	if _, err := ParseDay(day); err != nil {
		return "", err
	}
	return day, nil
}

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// WeekEnd returns the Saturday on or after d.
func WeekEnd(d time.Time) time.Time {
	days := (int(time.Saturday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, days)
}

// MonthEnd returns the last day of d's month.
func MonthEnd(d time.Time) time.Time {
	firstOfNext := time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, d.Location())
	return firstOfNext.AddDate(0, 0, -1)
}

// EndsOf computes the period ends for a YYYY-MM-DD day.
func EndsOf(day string) (Ends, error) {
	d, err := ParseDay(day)
	if err != nil {
		return Ends{}, err
	}
	return Ends{
		WeekEnd:  WeekEnd(d).Format(DayLayout),
		MonthEnd: MonthEnd(d).Format(DayLayout),
	}, nil
}

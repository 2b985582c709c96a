// Package dateutil normalizes the dates found in portal records.
package dateutil

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// Layout of a normalized date, a timestamp without zone.
const Layout = "2006-01-02T15:04:05"

// Parse a date in one of the many formats dateparse understands.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseStrict(value)
}

// BeginningOfDay parses a date and moves it to midnight of the same day.
func BeginningOfDay(value string) (time.Time, error) {
	t, err := Parse(value)
	if err != nil {
		return time.Time{}, err
	}
	return now.With(t).BeginningOfDay(), nil
}

// Day formats a date as midnight of its day, e.g. "2023-12-01" becomes
// "2023-12-01T00:00:00". Empty values stay empty.
func Day(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	t, err := BeginningOfDay(value)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

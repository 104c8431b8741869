package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// LoadLocation resolves an IANA timezone name, falling back to UTC for an empty name.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", tz, err)
	}
	return loc, nil
}

// TimeNowIn returns the current time in the given location.
func TimeNowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// PreviousDate returns the calendar day before now, formatted as YYYY-MM-DD.
func PreviousDate(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(dateLayout)
}

// ValidateDate reports whether s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return nil
}

// PrettyDate formats t for human readable reports.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04 MST")
}

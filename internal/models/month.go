package models

import (
	"fmt"
	"time"
)

// monthLayout renders labels such as "March 2025".
const monthLayout = "January 2006"

// DateOnly strips the clock from t, keeping its calendar day, in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOnly(time.Now())
}

// MonthLabel is the canonical month label of a date. Stored transaction
// months are always produced by this function.
func MonthLabel(date time.Time) string {
	return date.Format(monthLayout)
}

// ParseMonthLabel parses a label produced by MonthLabel and returns the
// first day of that month.
func ParseMonthLabel(label string) (time.Time, error) {
	t, err := time.Parse(monthLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month label %q, expected e.g. %q", label, MonthLabel(Today()))
	}
	return t, nil
}

package librarystore

import (
	"errors"
	"time"
)

const (
	// DateLayout is the layout of every date stored by the library.
	DateLayout = "2006-01-02"

	// SuspensionFactor multiplies overdue days into suspension days.
	SuspensionFactor = 2

	minSupportedYear = 1900
	maxSupportedYear = 3000
	secondsPerDay    = 86400
)

// FormatDate renders t as a calendar date in its own location.
func FormatDate(t time.Time) DateString {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
// Only real calendar dates between the years 1900 and 3000 are accepted.
func ParseDate(s DateString) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}

	if t.Year() < minSupportedYear || t.Year() > maxSupportedYear {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date between the years 1900 and 3000.
func IsValidDate(s DateString) bool {
	_, err := ParseDate(s)

	return err == nil
}

// AddDays returns the date daysToAdd days after (or before, if negative) the given date.
func AddDays(date DateString, daysToAdd int) (DateString, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	return FormatDate(t.AddDate(0, 0, daysToAdd)), nil
}

// DaysFrom returns the date daysToAdd days after the calendar day of t.
func DaysFrom(t time.Time, daysToAdd int) DateString {
	return FormatDate(t.AddDate(0, 0, daysToAdd))
}

// DaysBetween returns the number of whole days from `from` to `to` (to minus from).
func DaysBetween(from, to DateString) (int, error) {
	fromTime, err := ParseDate(from)
	if err != nil {
		return 0, err
	}

	toTime, err := ParseDate(to)
	if err != nil {
		return 0, err
	}

	return int((toTime.Unix() - fromTime.Unix()) / secondsPerDay), nil
}

// OverdueDays returns max(0, asOf - due) in whole days.
func OverdueDays(due, asOf DateString) (int, error) {
	days, err := DaysBetween(due, asOf)
	if err != nil {
		return 0, err
	}

	return max(0, days), nil
}

// SuspensionDays returns the borrowing suspension caused by the given overdue days.
func SuspensionDays(overdueDays int) int {
	return max(0, overdueDays) * SuspensionFactor
}

// Package datekey converts between calendar dates and canonical YYYY-MM-DD keys.
//
// Keys always come from a date's local calendar fields. Nothing here converts
// to UTC, so a key never drifts by a day around midnight.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat is returned when a string is not a valid YYYY-MM-DD key.
var ErrInvalidFormat = errors.New("invalid date format")

const keyLayout = "2006-01-02"

// Date is a calendar date with no time or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today is the current local date.
func Today() Date { return FromTime(time.Now()) }

// Key formats d as YYYY-MM-DD.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string { return d.Key() }

// AddDays moves d by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	// noon UTC keeps the arithmetic clear of DST transitions
	return FromTime(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Weekday counts Sunday as 0.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Time returns local midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Parse is the inverse of Date.Key. Anything that is not exactly
// YYYY-MM-DD with an existing month and day fails with ErrInvalidFormat.
func Parse(s string) (Date, error) {
	if len(s) != len(keyLayout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	year, ok1 := digits(s[0:4])
	month, ok2 := digits(s[5:7])
	day, ok3 := digits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d out of range", ErrInvalidFormat, month)
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidFormat, day, year, month)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// Valid reports whether s parses as a key.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

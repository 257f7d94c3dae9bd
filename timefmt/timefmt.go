// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timefmt

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates the string does not match the strict HH:MM or
	// YYYY-MM-DD pattern (wrong length, missing zero-padding, wrong
	// separator, extra tokens).
	ErrFormat = errors.New("invalid format")

	// ErrRange indicates the string matched the pattern but a component
	// is outside its calendar range (hour > 23, minute > 59, month 13,
	// February 30, ...).
	ErrRange = errors.New("out of range")
)

// TimeOfDay is a wall-clock time with no date and no timezone. Two
// TimeOfDay values describing the same HH:MM always compare equal,
// regardless of server or viewer timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// CalendarDate is a civil date with no time and no timezone.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// ParseTime parses a strict two-digit "HH:MM" string.
func ParseTime(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !allDigits(s[0:2]) || !allDigits(s[3:5]) {
		return TimeOfDay{}, fmt.Errorf("parse time %q: expected HH:MM: %w", s, ErrFormat)
	}
	hour := digits2(s[0:2])
	minute := digits2(s[3:5])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", s, ErrRange)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseDate parses a strict "YYYY-MM-DD" string.
func ParseDate(s string) (CalendarDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' ||
		!allDigits(s[0:4]) || !allDigits(s[5:7]) || !allDigits(s[8:10]) {
		return CalendarDate{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD: %w", s, ErrFormat)
	}
	year := digits2(s[0:2])*100 + digits2(s[2:4])
	month := digits2(s[5:7])
	day := digits2(s[8:10])
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, ErrRange)
	}
	return CalendarDate{Year: year, Month: month, Day: day}, nil
}

// String formats the time back to canonical "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// String formats the date back to canonical "YYYY-MM-DD".
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0, or 1 ordering t against u.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	switch {
	case t.Hour != u.Hour:
		return sign(t.Hour - u.Hour)
	case t.Minute != u.Minute:
		return sign(t.Minute - u.Minute)
	}
	return 0
}

func (t TimeOfDay) Before(u TimeOfDay) bool { return t.Compare(u) < 0 }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t.Compare(u) > 0 }

// Compare returns -1, 0, or 1 ordering d against e.
func (d CalendarDate) Compare(e CalendarDate) int {
	switch {
	case d.Year != e.Year:
		return sign(d.Year - e.Year)
	case d.Month != e.Month:
		return sign(d.Month - e.Month)
	case d.Day != e.Day:
		return sign(d.Day - e.Day)
	}
	return 0
}

func (d CalendarDate) Before(e CalendarDate) bool { return d.Compare(e) < 0 }
func (d CalendarDate) After(e CalendarDate) bool  { return d.Compare(e) > 0 }

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29
	}
	return 28
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// digits2 converts a 2-character digit string; caller guarantees shape.
func digits2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
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

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package timefmt parses and formats the canonical wire representations for
poll slots: "HH:MM" times and "YYYY-MM-DD" dates.

Parsing is strict: two-digit hour and minute, four-digit year, no
single-digit components, no alternate separators. Shape violations return
ErrFormat; values outside calendar range return ErrRange. Both are
distinguishable with errors.Is.

The round-trip law holds for every valid input:

	t, _ := timefmt.ParseTime("09:30")
	t.String() == "09:30"

TimeOfDay and CalendarDate are plain value types compared field-wise. They
never pass through time.Time, so the same wall-clock slot compares equal
no matter what timezone the server or viewer is in.
*/
package timefmt

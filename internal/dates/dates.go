// Package dates holds the calendar arithmetic used by scheduling and reporting.
//
// Every value produced here is a UTC midnight. Scheduling positions count
// calendar days; the business-day helpers exist for reporting only.
package dates

import (
	"math"
	"strings"
	"time"
)

const (
	isoLayout      = "2006-01-02"
	ddmmmyyLayout  = "02-Jan-06"
	hoursPerDay    = 24
	monthAbbrevLen = 3
)

// Accepted input layouts, tried in order.
var layouts = []string{
	isoLayout,
	"2-Jan-2006",
	"2-Jan-06",
	time.RFC3339,
}

// Parse reads an ISO (YYYY-MM-DD), DD-MMM-YY or DD-MMM-YYYY date.
// Month abbreviations are case-insensitive. It reports false instead of failing.
func Parse(text string) (time.Time, bool) {
	s := normalizeMonth(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// normalizeMonth rewrites "05-JAN-26" as "05-Jan-26" so the layouts match.
func normalizeMonth(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[1]) != monthAbbrevLen {
		return s
	}
	m := strings.ToLower(parts[1])
	parts[1] = strings.ToUpper(m[:1]) + m[1:]
	return strings.Join(parts, "-")
}

// Midnight truncates t to 00:00 UTC of its calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISO formats t as YYYY-MM-DD. The zero time formats as "".
func ISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoLayout)
}

// FormatDDMMMYY formats t as 05-Jan-26. The zero time formats as "".
func FormatDDMMMYY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ddmmmyyLayout)
}

// AddDays moves t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Finish returns start + dur calendar days.
func Finish(start time.Time, dur int) time.Time {
	return AddDays(start, dur)
}

// DaysBetween returns the whole calendar days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / hoursPerDay))
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays moves t by n weekdays, skipping Saturday and Sunday.
// Negative n moves backwards.
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		t = AddDays(t, step)
		if !IsWeekend(t) {
			n--
		}
	}
	return t
}

// CountBusinessDays counts weekdays strictly after a up to and including b.
// Friday to the following Monday is 1. If b is before a the count is negative.
func CountBusinessDays(a, b time.Time) int {
	if b.Before(a) {
		return -CountBusinessDays(b, a)
	}
	count := 0
	for d := AddDays(a, 1); !d.After(b); d = AddDays(d, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

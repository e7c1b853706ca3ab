// Package calendar provides the date arithmetic that timeline scheduling
// is built on: ISO calendar dates, day-index offsets within a visible
// window, weekend detection, and business-day math.
//
// All operations work on [Date] values, which are calendar dates pinned to
// midnight UTC. Pinning to a fixed instant means day arithmetic can never
// be skewed by daylight-saving transitions, so adding one day is always
// exactly one calendar day.
//
// # Business days
//
// A business day is a weekday (Monday through Friday). Weekends never
// count toward a duration and are never valid anchors for constraint
// propagation: [NextBusinessDay] rolls Saturday and Sunday forward to
// Monday, and [AddBusinessDays] steps over weekends entirely.
package calendar

import (
	"fmt"
	"time"
)

// ISOFormat is the wire format for calendar dates (e.g. "2025-12-03").
const ISOFormat = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// The zero value is usable and represents January 1, year 1.
type Date struct {
	t time.Time
}

// NewDate creates a Date from a year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses an ISO "YYYY-MM-DD" string into a Date.
func Parse(iso string) (Date, error) {
	t, err := time.Parse(ISOFormat, iso)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", iso, err)
	}
	return Date{t}, nil
}

// MustParse parses an ISO date string and panics on failure.
// Intended for literals in tests and seed data.
func MustParse(iso string) Date {
	d, err := Parse(iso)
	if err != nil {
		panic(err)
	}
	return d
}

// Today returns the current date in the local timezone.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ISO formats the date as "YYYY-MM-DD".
func (d Date) ISO() string { return d.t.Format(ISOFormat) }

// String returns the ISO representation.
func (d Date) String() string { return d.ISO() }

// Time returns the underlying instant (midnight UTC).
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n calendar days after d (before, if n < 0).
func (d Date) AddDays(n int) Date { return Date{d.t.AddDate(0, 0, n)} }

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0, or +1 depending on whether d is earlier than,
// equal to, or later than other.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// DayIndex returns the signed day offset of date from rangeStart.
// Index 0 is rangeStart itself; dates before it are negative.
func DayIndex(rangeStart, date Date) int {
	return int(date.t.Sub(rangeStart.t) / (24 * time.Hour))
}

// DaysInclusive returns the number of calendar days from a to b inclusive.
// Returns 0 when b is before a.
func DaysInclusive(a, b Date) int {
	if b.Before(a) {
		return 0
	}
	return DayIndex(a, b) + 1
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether the date is a weekday.
func IsBusinessDay(d Date) bool { return !IsWeekend(d) }

// BusinessDays counts the weekdays from start to due inclusive,
// with a floor of 1. The floor keeps a weekend-only range from producing
// a zero-length task: every task occupies at least one business day for
// scheduling purposes. Returns 0 only when due is before start.
func BusinessDays(start, due Date) int {
	if due.Before(start) {
		return 0
	}
	count := 0
	for cur := start; !cur.After(due); cur = cur.AddDays(1) {
		if IsBusinessDay(cur) {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

// NextBusinessDay returns d itself when d is a weekday, otherwise the
// following Monday.
func NextBusinessDay(d Date) Date {
	for IsWeekend(d) {
		d = d.AddDays(1)
	}
	return d
}

// AddBusinessDays advances start by n weekday-only steps, skipping
// weekends. n <= 0 returns start unchanged. The starting date itself is
// not counted as a step, so AddBusinessDays(Friday, 1) is Monday.
func AddBusinessDays(start Date, n int) Date {
	cur := start
	for n > 0 {
		cur = cur.AddDays(1)
		if IsBusinessDay(cur) {
			n--
		}
	}
	return cur
}

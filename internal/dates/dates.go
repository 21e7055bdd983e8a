// Package dates normalizes every calendar computation through a single
// fixed reference zone. Plan entries are keyed by YYYY-MM-DD strings in
// UTC+8 regardless of where the server runs, so "today", navigation and
// plan lookups must all pass through here.
package dates

import (
	"fmt"
	"time"
)

// KeyLayout is the calendar-key format used by the plan data.
const KeyLayout = "2006-01-02"

// Reference is the fixed plan timezone (UTC+8).
var Reference = time.FixedZone("UTC+8", 8*60*60)

// Key formats a time as a plan date key after normalizing into the
// reference zone.
func Key(t time.Time) string {
	return t.In(Reference).Format(KeyLayout)
}

// Today returns the current date key in the reference zone.
func Today() string {
	return Key(time.Now())
}

// Parse converts a YYYY-MM-DD key back into a time anchored at midnight
// in the reference zone. Non-padded forms like "2026-1-2" are rejected:
// index lookups and range comparisons rely on the fixed-width key.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, Reference)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	if Key(t) != key {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// MustParse is Parse for compile-time-known keys; it panics on bad input.
func MustParse(key string) time.Time {
	t, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return t
}

// AddDays returns the key offset by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, n)), nil
}

// Range is the closed interval of dates covered by the plan year.
type Range struct {
	Start string
	End   string
}

// NewRange validates and builds a plan range.
func NewRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if e.Before(s) {
		return Range{}, fmt.Errorf("range end %s before start %s", end, start)
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether the key lies inside the range. Keys compare
// lexicographically because of the fixed YYYY-MM-DD layout.
func (r Range) Contains(key string) bool {
	return key >= r.Start && key <= r.End
}

// Clamp returns the key limited to the range boundaries.
func (r Range) Clamp(key string) string {
	if key < r.Start {
		return r.Start
	}
	if key > r.End {
		return r.End
	}
	return key
}

// ChangeDay steps the current date by delta days. Steps that would leave
// the range are rejected entirely: the current date is returned unchanged.
func (r Range) ChangeDay(current string, delta int) (string, error) {
	next, err := AddDays(current, delta)
	if err != nil {
		return "", err
	}
	if !r.Contains(next) {
		return current, nil
	}
	return next, nil
}

// ChangeMonth steps the current date by delta months, clamping to the
// nearest range boundary instead of rejecting.
func (r Range) ChangeMonth(current string, delta int) (string, error) {
	t, err := Parse(current)
	if err != nil {
		return "", err
	}
	return r.Clamp(Key(t.AddDate(0, delta, 0))), nil
}

// YearMonth extracts the year and month of a date key.
func YearMonth(key string) (int, time.Month, error) {
	t, err := Parse(key)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}

// InMonth reports whether the key falls inside the given year and month.
func InMonth(key string, year int, month time.Month) bool {
	t, err := Parse(key)
	if err != nil {
		return false
	}
	return t.Year() == year && t.Month() == month
}

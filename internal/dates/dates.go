// Package dates holds the calendar-date helpers shared by the tree, filter
// and schedule packages. All dates are day-precision values in UTC.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the ISO-8601 calendar date format used in persisted documents.
const Layout = "2006-01-02"

// looseLayouts are tried in order by ParseLoose after Layout fails.
var looseLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Parse parses an ISO date. An empty string yields nil with no error.
func Parse(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

// MustParse is Parse for literals in tests and fixtures. It panics on bad input.
func MustParse(s string) *time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseLoose converts mixed date inputs to a day-precision date. It accepts
// nil, strings in several common layouts, time.Time and *time.Time. Anything
// it cannot interpret yields nil.
func ParseLoose(v any) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return Ptr(val)
	case *time.Time:
		if val == nil || val.IsZero() {
			return nil
		}
		return Ptr(*val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		if t, err := time.Parse(Layout, s); err == nil {
			return &t
		}
		for _, layout := range looseLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Ptr(t)
			}
		}
		return nil
	default:
		return nil
	}
}

// Truncate drops the time-of-day and zone, keeping the calendar date as seen
// in t's own location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to the truncated date of t.
func Ptr(t time.Time) *time.Time {
	d := Truncate(t)
	return &d
}

// Format renders a date as YYYY-MM-DD, or "" for nil.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}

// FormatPtr is Format for persisted documents, where an absent date is null.
func FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(Layout)
	return &s
}

// Equal compares two optional dates at day precision.
func Equal(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Truncate(*a).Equal(Truncate(*b))
}

// Before reports whether a is strictly before b. Nil never compares.
func Before(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return Truncate(*a).Before(Truncate(*b))
}

// Within reports whether target falls in [start, end]. A nil bound is open
// and a nil target always passes.
func Within(target, start, end *time.Time) bool {
	if target == nil {
		return true
	}
	if Before(target, start) {
		return false
	}
	if Before(end, target) {
		return false
	}
	return true
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Nil endpoints are unbounded.
func Overlaps(aStart, aEnd, bStart, bEnd *time.Time) bool {
	if Before(aEnd, bStart) {
		return false
	}
	if Before(bEnd, aStart) {
		return false
	}
	return true
}

// Min returns the earliest non-nil date, or nil.
func Min(ts ...*time.Time) *time.Time {
	var out *time.Time
	for _, t := range ts {
		if t != nil && (out == nil || Before(t, out)) {
			out = t
		}
	}
	return out
}

// Max returns the latest non-nil date, or nil.
func Max(ts ...*time.Time) *time.Time {
	var out *time.Time
	for _, t := range ts {
		if t != nil && (out == nil || Before(out, t)) {
			out = t
		}
	}
	return out
}

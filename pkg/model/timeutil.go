package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock reports whether s matches the wire HH:MM format (24h).
func IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ClockMinutes converts an "HH:MM" string into minutes since midnight. The
// caller must have validated the format with IsValidClock first.
func ClockMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock minute in %q: %w", s, err)
	}
	return h*60 + m, nil
}

// ClockHours converts an "HH:MM" string into hours since midnight.
func ClockHours(s string) (float64, error) {
	m, err := ClockMinutes(s)
	if err != nil {
		return 0, err
	}
	return float64(m) / 60.0, nil
}

// SpanHours returns the duration in hours between two HH:MM clock strings,
// assuming start precedes end on the same date.
func SpanHours(start, end string) (float64, error) {
	sm, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	em, err := ClockMinutes(end)
	if err != nil {
		return 0, err
	}
	return float64(em-sm) / 60.0, nil
}

// Overlaps reports whether two [start,end) intervals, given as HH:MM
// strings, intersect. Two intervals overlap unless one ends at or before
// the other begins.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	sa, err := ClockMinutes(startA)
	if err != nil {
		return false, err
	}
	ea, err := ClockMinutes(endA)
	if err != nil {
		return false, err
	}
	sb, err := ClockMinutes(startB)
	if err != nil {
		return false, err
	}
	eb, err := ClockMinutes(endB)
	if err != nil {
		return false, err
	}
	return !(ea <= sb || eb <= sa), nil
}

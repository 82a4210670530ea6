// Package timeutil converts between "HH:MM" wall-clock strings and
// integer minutes since midnight, and rounds times to a snapping
// granularity. All schedule arithmetic elsewhere works in minutes;
// the string form exists only at the model and display boundaries.
package timeutil

import (
	"fmt"
	"regexp"
)

// DefaultStep is the snapping granularity in minutes applied at
// normalization boundaries (post-generation, field blur).
const DefaultStep = 5

// MinutesPerDay is the number of minutes in a 24-hour day.
const MinutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsClock reports whether s is a zero-padded 24-hour "HH:MM" string
// between 00:00 and 23:59.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock parses a "HH:MM" string into minutes since midnight.
// Times past 23:59 are rejected; multi-day-spanning blocks are not
// representable and must be caught at request validation instead.
func ParseClock(s string) (int, error) {
	if !IsClock(s) {
		return 0, fmt.Errorf("invalid clock time %q (want HH:MM, 00:00-23:59)", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM". Negative
// input clamps to 00:00. Hours are not wrapped at 24 so transient
// editor arithmetic can never silently fold into the previous day;
// callers clamp into the day window before the value reaches a block.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Snap rounds minutes to the nearest multiple of step. A step of zero
// or less falls back to DefaultStep.
func Snap(minutes, step int) int {
	if step <= 0 {
		step = DefaultStep
	}
	snapped := (minutes + step/2) / step * step
	if snapped < 0 {
		return 0
	}
	return snapped
}

// SnapClock rounds a "HH:MM" string to the nearest multiple of step.
// Malformed input is returned unchanged: snapping runs on field blur
// and post-generation, and a half-typed time must not be rewritten
// under the user.
func SnapClock(s string, step int) string {
	min, err := ParseClock(s)
	if err != nil {
		return s
	}
	snapped := Snap(min, step)
	if snapped >= MinutesPerDay {
		snapped = MinutesPerDay - 1
	}
	return FormatClock(snapped)
}

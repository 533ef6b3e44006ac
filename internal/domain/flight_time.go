package domain

import (
	"fmt"
	"time"
)

// RoundingDirection selects how RoundDuration treats a remainder
type RoundingDirection int

const (
	RoundNearest RoundingDirection = iota
	RoundUp
	RoundDown
)

// FormatTotalHours renders d as "<total hours>:<minutes>", e.g. 26h5m -> "26:05".
// Non-positive durations render as "".
func FormatTotalHours(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	hours := int64(d / time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// RoundDuration rounds d to a multiple of the given number of minutes.
// Smaller units are dropped. minutes == 0 returns d unchanged.
// Nearest rounds up only past the half-way mark.
func RoundDuration(d time.Duration, minutes int, direction RoundingDirection) time.Duration {
	if minutes == 0 {
		return d
	}
	unit := time.Duration(minutes) * time.Minute
	mod := d % unit

	var delta time.Duration
	switch direction {
	case RoundUp:
		if mod != 0 {
			delta = unit - mod
		}
	case RoundDown:
		delta = -mod
	default:
		var offset time.Duration
		if mod > unit/2 {
			offset = unit
		}
		delta = offset - mod
	}
	return d + delta
}

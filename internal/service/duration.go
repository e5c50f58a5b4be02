package service

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ComputeDuration returns the elapsed time between two "HH:MM" clock
// values as "<H>h <M>m". End values at or before the start are taken to
// be on the following day, so 22:00 -> 06:30 is "8h 30m" and equal
// times are a full "24h 0m" wrap. Malformed input yields "0h 0m";
// a half-filled form must never break the caller.
func ComputeDuration(start, end string) string {
	startMin, ok := parseClock(start)
	if !ok {
		return "0h 0m"
	}
	endMin, ok := parseClock(end)
	if !ok {
		return "0h 0m"
	}

	if endMin <= startMin {
		endMin += minutesPerDay
	}
	diff := endMin - startMin

	return fmt.Sprintf("%dh %dm", diff/60, diff%60)
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if h < 0 || m < 0 {
		return 0, false
	}
	return h*60 + m, true
}

// Package timegrid models the planner's quarter-hour day grid and the
// wall-clock string formats used across the API.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// StartHour and EndHour bound the visible grid (inclusive).
	StartHour = 6
	EndHour   = 22

	// QuartersPerHour subdivides each hour row into 15-minute cells.
	QuartersPerHour = 4
	QuarterMinutes  = 15

	// DateLayout and TimeLayout are the local wall-clock formats stored and
	// exchanged by the service. No timezone handling happens on top of them.
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// InGrid reports whether an hour falls inside the visible grid.
func InGrid(hour int) bool {
	return hour >= StartHour && hour <= EndHour
}

// ValidQuarter reports whether a minute value sits on a quarter boundary.
func ValidQuarter(minute int) bool {
	return minute == 0 || minute == 15 || minute == 30 || minute == 45
}

// FormatHour renders an hour label for a grid row on a 12-hour clock.
// Hours 0 and 12 both render as "12".
func FormatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, suffix)
}

// FormatTime renders a zero-padded 24-hour "HH:MM" string.
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseTime is the strict inverse of FormatTime. Callers own validation of
// where the result may be used; this only rejects malformed input.
func ParseTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("malformed time %q, want HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: %w", value, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", value)
	}
	return hour, minute, nil
}

// SnapMinute floors an arbitrary minute value to its quarter boundary.
func SnapMinute(minute int) int {
	if minute < 0 {
		return 0
	}
	if minute > 59 {
		return 45
	}
	return (minute / QuarterMinutes) * QuarterMinutes
}

// SnapOffsetToQuarter converts a vertical pointer offset within an hour row to
// the minute of the quarter cell it lands in. The result is always one of
// 0, 15, 30 or 45: drops past the final cell clamp to :45 of the same hour
// instead of rolling into the next one.
func SnapOffsetToQuarter(offsetPx, rowHeightPx float64) int {
	if rowHeightPx <= 0 || offsetPx <= 0 {
		return 0
	}
	quarter := int(offsetPx / (rowHeightPx / QuartersPerHour))
	if quarter > QuartersPerHour-1 {
		quarter = QuartersPerHour - 1
	}
	return quarter * QuarterMinutes
}

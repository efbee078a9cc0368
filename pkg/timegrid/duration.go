package timegrid

import "fmt"

// FormatDuration renders a minute count for display: "45min" under an hour,
// otherwise "2h" or "1h 30m". Input is assumed non-negative; callers validate
// durations before they get here.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	remainder := minutes % 60
	if remainder == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, remainder)
}

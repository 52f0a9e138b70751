package ui

import (
	"fmt"
	"time"
)

// FormatClock renders a second count as MM:SS, or H:MM:SS past an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	minutes := seconds / 60
	secs := seconds % 60
	if minutes < 60 {
		return fmt.Sprintf("%02d:%02d", minutes, secs)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// FormatMinutes renders a fractional minute count like "10.5m".
func FormatMinutes(minutes float64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%.1fm", minutes)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatTimeAgo returns a compact age string like "2h ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	if then.IsZero() || then.After(now) {
		return "-"
	}
	return FormatDurationShort(now.Sub(then)) + " ago"
}

// FormatDay renders a timestamp's calendar day as YYYY-MM-DD.
func FormatDay(at time.Time) string {
	return at.Format("2006-01-02")
}

package domain

import "fmt"

// FormatDistance renders a distance for leg summary cards:
// kilometres with one decimal at 1km and above, whole metres below.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatDuration renders an expected travel time, dropping the hour part
// for trips under an hour.
func FormatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := int(seconds) / 60 % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}

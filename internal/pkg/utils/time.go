package utils

import (
	"fmt"
	"time"
)

// MinuteOfDay parses an "HH:MM" wall-clock string into minutes 0-1439.
// The ok result is false for anything that does not parse.
func MinuteOfDay(timeOfDay string) (int, bool) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

// FormatMinuteOfDay renders minutes-from-midnight back into "HH:MM".
// Minutes past 1439 wrap, matching plain clock arithmetic.
func FormatMinuteOfDay(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func IsTimeWithinRange(requestedTime, startTime, endTime string) bool {
	requested, _ := time.Parse("15:04", requestedTime)
	start, _ := time.Parse("15:04", startTime)
	end, _ := time.Parse("15:04", endTime)

	return requested.Equal(start) || (requested.After(start) && requested.Before(end))
}

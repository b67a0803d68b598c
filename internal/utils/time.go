package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ValidHHMM checks a departure/arrival time string.
func ValidHHMM(s string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(s))
	return err == nil
}

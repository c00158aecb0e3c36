package utils

import (
	"time"
)

// InZone projects a UTC instant into the named IANA zone for display.
// Invalid or empty zone names fall back to fallbackZone, then to UTC.
// The stored UTC value is never mutated.
func InZone(t time.Time, zoneName, fallbackZone string) time.Time {
	loc, err := time.LoadLocation(zoneName)
	if err != nil || zoneName == "" {
		loc, err = time.LoadLocation(fallbackZone)
		if err != nil {
			loc = time.UTC
		}
	}
	return t.In(loc)
}

// FormatInZone renders a UTC instant as local wall-clock text for messages.
func FormatInZone(t time.Time, zoneName, fallbackZone string) string {
	return InZone(t, zoneName, fallbackZone).Format("2006-01-02 15:04")
}

// HourBucket truncates t to the start of its hour, used as the overdue
// digest rate-limit bucket.
func HourBucket(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}

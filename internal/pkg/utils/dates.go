package utils

import (
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	// en-PH short date, e.g. 3/10/2025
	phDateLayout = "1/2/2006"
	// en-PH date and time, e.g. 3/10/2025, 2:05:07 PM
	phTimestampLayout = "1/2/2006, 3:04:05 PM"
	isoDateLayout     = "2006-01-02"
)

// LoadLocation resolves an IANA zone name; an empty name means Asia/Manila.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = "Asia/Manila"
	}
	return time.LoadLocation(name)
}

// FormatTimestampPH renders t as an en-PH date and time in loc.
func FormatTimestampPH(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(phTimestampLayout)
}

// FormatDatePH turns an ISO timestamp or ISO calendar date into an en-PH
// short date in loc. The second result is false, and the input is returned
// untouched, when value cannot be parsed.
func FormatDatePH(value string, loc *time.Location) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc).Format(phDateLayout), true
	}
	if t, err := time.ParseInLocation(isoDateLayout, value, loc); err == nil {
		return t.Format(phDateLayout), true
	}
	return value, false
}

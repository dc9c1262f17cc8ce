package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical date format used across stores
const DateLayout = "2006-01-02"

// Layouts accepted for the activity date column, in order of preference
var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// ParseDate parses a sheet date cell. Unparseable values return the zero time
// so that the activity sorts last and is excluded from upcoming filters.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// Today returns the current date normalised to midnight UTC
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

package choreography

import (
	"fmt"
	"time"
)

// instantLayouts are tried in order when parsing slide instants. Choreography
// files in the wild carry either full RFC3339 stamps or bare dates.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant parses a time slider or lighting instant.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized instant %q", s)
}

// StepMillis converts a step count in the given unit to milliseconds.
// Months and years use the conventional 30/365 day approximations.
func StepMillis(step float64, unit string) (float64, bool) {
	const (
		second = 1000.0
		minute = 60 * second
		hour   = 60 * minute
		day    = 24 * hour
	)
	switch unit {
	case "milliseconds":
		return step, true
	case "seconds":
		return step * second, true
	case "minutes":
		return step * minute, true
	case "hours":
		return step * hour, true
	case "days":
		return step * day, true
	case "weeks":
		return step * 7 * day, true
	case "months":
		return step * 30 * day, true
	case "years":
		return step * 365 * day, true
	default:
		return 0, false
	}
}

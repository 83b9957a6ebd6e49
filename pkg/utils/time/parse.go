// ABOUTME: Time parsing utilities for Atom timestamps
// ABOUTME: Strict RFC 3339 parsing plus a lenient fallback over common feed formats

package time

import (
	"fmt"
	"strings"
	"time"
)

// rfc3339Formats are the layouts accepted for Atom date constructs
var rfc3339Formats = []string{
	time.RFC3339Nano,
	"2006-01-02",
}

// Formats seen in the wild when publishers ignore RFC 3339
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseRFC3339 parses an Atom timestamp. Surrounding whitespace is ignored;
// a date-only value is read as midnight UTC. The "t" and "z" separators may be
// lower case (RFC 3339 section 5.6).
func ParseRFC3339(timeStr string) (time.Time, error) {
	timeStr = strings.ToUpper(strings.TrimSpace(timeStr))
	if timeStr == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	var firstErr error
	for _, format := range rfc3339Formats {
		t, err := time.Parse(format, timeStr)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseFlexibleTime attempts to parse a time string using various formats.
// Returns the zero time when nothing matches.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}

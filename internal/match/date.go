package match

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// fbref prints ISO dates in every table; other layouts come from older history pages.
const dateLayout = "2006-01-02"

// ParseDate parses a table date in loc.
// Returns time.Time{} (zero value) if parsing fails.
// Supports "2024-08-16" and anything dateparse recognises ("Aug 16 2024", "16/08/2024", ...).
func ParseDate(dateText string, loc *time.Location) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(dateLayout, dateText, loc); err == nil {
		return t
	}

	t, err := dateparse.ParseIn(dateText, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseKickoff combines a table date and clock time into a kickoff instant in loc.
// fbref appends the visitor's local time in brackets ("20:00 (21:00)"); only the
// venue time is used. A missing or unreadable clock leaves the kickoff at midnight.
func ParseKickoff(dateText, clockText string, loc *time.Location) time.Time {
	day := ParseDate(dateText, loc)
	if day.IsZero() {
		return day
	}

	fields := strings.Fields(clockText)
	if len(fields) == 0 {
		return day
	}
	clock, err := time.Parse("15:04", fields[0])
	if err != nil {
		return day
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
}

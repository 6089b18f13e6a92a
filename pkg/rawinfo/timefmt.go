package rawinfo

import (
	"fmt"
	"time"
)

// Durations in seconds. Months are 30 days and years are 365 days; leap years
// and month lengths are ignored, so spans beyond a month are approximate.
const (
	Minute int64 = 60
	Hour         = 60 * Minute
	Day          = 24 * Hour
	Week         = 7 * Day
	Month        = 30 * Day
	Year         = 365 * Day
)

// TimestampLayout is ISO-8601 with a numeric zone offset.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FormatTimestamp renders t in local time, e.g. "2023-06-01T14:03:59+0200".
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// FormatTimeSpan describes the duration from start to end.
func FormatTimeSpan(start time.Time, end time.Time) string {
	s := end.Unix() - start.Unix()

	switch {
	case s < 1:
		return "less than a second"
	case s < Minute:
		return fmt.Sprintf("%d seconds", s)
	case s < Hour:
		if s%Minute == 0 {
			return fmt.Sprintf("%d minutes", s/Minute)
		}
		return fmt.Sprintf("%d minutes, %d seconds", s/Minute, s%Minute)
	case s < Day:
		if s%Hour == 0 {
			return fmt.Sprintf("%d hours", s/Hour)
		}
		return fmt.Sprintf("%d hours, %d minutes", s/Hour, s%Hour/Minute)
	case s < Month:
		if s%Day == 0 {
			return fmt.Sprintf("%d days", s/Day)
		}
		return fmt.Sprintf("%d days, %d hours", s/Day, s%Day/Hour)
	case s < Year:
		if s%Month == 0 {
			return fmt.Sprintf("%d months", s/Month)
		}
		return fmt.Sprintf("approx. %d months, %d days", s/Month, s%Month/Day)
	default:
		if s%Year == 0 {
			return fmt.Sprintf("%d years", s/Year)
		}
		return fmt.Sprintf("approx. %d years, %d months", s/Year, s%Year/Month)
	}
}

// FormatTimeSince describes how long ago t was, e.g. "3 days ago".
func FormatTimeSince(t time.Time, c Clock) string {
	s := c.Now().Unix() - t.Unix()

	switch {
	case s < 1:
		return "just now"
	case s < Minute:
		return ago("second", s)
	case s < Hour:
		return ago("minute", s/Minute)
	case s < Day:
		return ago("hour", s/Hour)
	case s < Week:
		return ago("day", s/Day)
	case s < Month:
		return ago("week", s/Week)
	case s < Year:
		return ago("month", s/Month)
	default:
		return ago("year", s/Year)
	}
}

func ago(unit string, n int64) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

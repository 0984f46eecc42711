// Package dateutil provides calendar helpers shared by the inventory and
// notification code. All day arithmetic on raw instants truncates toward
// zero, matching the expiry classifier.
package dateutil

import (
	"fmt"
	"time"
)

const (
	// DisplayFormat is used for user-facing dates.
	DisplayFormat = "02 Jan 2006"
	// StorageFormat is used when dates travel as plain strings.
	StorageFormat = "2006-01-02"
	// TimeFormat is the HH:MM layout used by the notification-time setting.
	TimeFormat = "15:04"

	// Day is the fixed 24h span used for day-bucket arithmetic.
	Day = 24 * time.Hour
)

// FormatDate renders t in the display format.
func FormatDate(t time.Time) string {
	return t.Format(DisplayFormat)
}

// FormatForStorage renders t in the storage format.
func FormatForStorage(t time.Time) string {
	return t.Format(StorageFormat)
}

// ParseStorageDate parses a storage-format date string. Returns nil when the
// string does not parse.
func ParseStorageDate(s string) *time.Time {
	t, err := time.ParseInLocation(StorageFormat, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// DaysBetween returns the number of whole 24h spans from start to end,
// truncated toward zero.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start) / Day)
}

// DaysUntil returns the number of whole 24h spans from now until t.
func DaysUntil(t time.Time, now time.Time) int {
	return DaysBetween(now, t)
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t time.Time, now time.Time) bool {
	y1, d1 := now.Year(), now.YearDay()
	y2, d2 := t.Year(), t.YearDay()
	return y1 == y2 && d1 == d2
}

// IsPast reports whether t is strictly before now.
func IsPast(t time.Time, now time.Time) bool {
	return t.Before(now)
}

// RelativeTime renders t relative to now, e.g. "2 days ago" or "In 3 days".
func RelativeTime(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(diff / Day)
	if days < 0 {
		days = -days
	}

	if diff < 0 {
		switch days {
		case 0:
			return "Today"
		case 1:
			return "Yesterday"
		default:
			return fmt.Sprintf("%d days ago", days)
		}
	}
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// AddDays shifts t by the given number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

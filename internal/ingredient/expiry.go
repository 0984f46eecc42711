package ingredient

import (
	"fmt"
	"time"
)

// Expiry thresholds in days.
const (
	ExpiryWarningDays  = 3
	ExpiryThisWeekDays = 7
)

// ExpiryState identifies an expiry bucket.
type ExpiryState int

const (
	StateNoExpiry ExpiryState = iota
	StateExpired
	StateExpiringToday
	StateExpiringSoon
	StateExpiringThisWeek
	StateFresh
)

// ExpiryStatus is the classification of an ingredient's expiry date relative
// to a point in time. Days carries days-left for the future buckets and
// days-ago for StateExpired; it is zero for StateNoExpiry and
// StateExpiringToday.
type ExpiryStatus struct {
	State ExpiryState
	Days  int
}

// String renders a short badge label for the status.
func (s ExpiryStatus) String() string {
	switch s.State {
	case StateNoExpiry:
		return "no expiry"
	case StateExpired:
		if s.Days == 1 {
			return "expired 1 day ago"
		}
		return fmt.Sprintf("expired %d days ago", s.Days)
	case StateExpiringToday:
		return "expires today"
	case StateExpiringSoon:
		return fmt.Sprintf("expires in %d days", s.Days)
	case StateExpiringThisWeek:
		return fmt.Sprintf("expires this week (%d days)", s.Days)
	default:
		return fmt.Sprintf("fresh (%d days)", s.Days)
	}
}

// CheckExpiry classifies an expiry date against now. Days are whole 24h spans
// of the raw difference, truncated toward zero; an item a few hours past its
// expiry instant still counts as expiring today, and one 25 hours out counts
// as one day left regardless of where midnight falls.
func CheckExpiry(expiry *time.Time, now time.Time) ExpiryStatus {
	if expiry == nil {
		return ExpiryStatus{State: StateNoExpiry}
	}

	daysUntilExpiry := int(expiry.Sub(now) / (24 * time.Hour))

	switch {
	case daysUntilExpiry < 0:
		return ExpiryStatus{State: StateExpired, Days: -daysUntilExpiry}
	case daysUntilExpiry == 0:
		return ExpiryStatus{State: StateExpiringToday}
	case daysUntilExpiry <= ExpiryWarningDays:
		return ExpiryStatus{State: StateExpiringSoon, Days: daysUntilExpiry}
	case daysUntilExpiry <= ExpiryThisWeekDays:
		return ExpiryStatus{State: StateExpiringThisWeek, Days: daysUntilExpiry}
	default:
		return ExpiryStatus{State: StateFresh, Days: daysUntilExpiry}
	}
}

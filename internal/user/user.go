// Package user stores the signed-in account and its preferences in a JSON
// file next to the database.
package user

// Theme is the closed set of UI color themes.
type Theme string

const (
	ThemeFrost    Theme = "FROST"
	ThemeMidnight Theme = "MIDNIGHT"
	ThemeSunrise  Theme = "SUNRISE"
)

// ParseTheme maps a stored string to a Theme. Unknown values resolve to
// ThemeFrost.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeFrost, ThemeMidnight, ThemeSunrise:
		return Theme(s)
	}
	return ThemeFrost
}

// User is the signed-in account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Settings holds the user's preferences.
type Settings struct {
	ExpiryNotifications bool    `json:"expiry_notifications"`
	Theme               Theme   `json:"theme"`
	UIScale             float64 `json:"ui_scale"`
	NotificationTime    string  `json:"notification_time"`
}

// DefaultSettings returns the preferences used before the user changes
// anything.
func DefaultSettings() Settings {
	return Settings{
		ExpiryNotifications: true,
		Theme:               ThemeFrost,
		UIScale:             1.0,
		NotificationTime:    "09:00",
	}
}

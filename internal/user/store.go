package user

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ffridge/internal/database"
)

// Store is a file-based store for the user account and preferences. All
// methods are safe for concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
	hub  *database.Hub
}

// NewStore creates a new Store backed by the JSON file at path and ensures
// the parent directory exists.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}
	return &Store{path: path, hub: database.NewHub()}, nil
}

type prefsFile struct {
	User       *User     `json:"user,omitempty"`
	IsLoggedIn bool      `json:"is_logged_in"`
	Settings   *Settings `json:"settings,omitempty"`
}

// SaveUser records the account and marks it signed in.
func (s *Store) SaveUser(u User) error {
	return s.edit(func(p *prefsFile) {
		p.User = &u
		p.IsLoggedIn = true
	})
}

// GetUser returns the signed-in account, or nil when nobody is signed in.
func (s *Store) GetUser() (*User, error) {
	p, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	if !p.IsLoggedIn || p.User == nil {
		return nil, nil
	}
	u := *p.User
	return &u, nil
}

// IsLoggedIn reports whether an account is signed in.
func (s *Store) IsLoggedIn() (bool, error) {
	p, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	return p.IsLoggedIn, nil
}

// Logout clears the account but keeps the preferences.
func (s *Store) Logout() error {
	return s.edit(func(p *prefsFile) {
		p.User = nil
		p.IsLoggedIn = false
	})
}

// GetSettings returns the stored preferences, with defaults for anything
// never set.
func (s *Store) GetSettings() (Settings, error) {
	p, err := s.loadLocked()
	if err != nil {
		return DefaultSettings(), err
	}
	if p.Settings == nil {
		return DefaultSettings(), nil
	}
	settings := *p.Settings
	settings.Theme = ParseTheme(string(settings.Theme))
	return settings, nil
}

// SaveSettings replaces the stored preferences.
func (s *Store) SaveSettings(settings Settings) error {
	return s.edit(func(p *prefsFile) {
		p.Settings = &settings
	})
}

// UpdateExpiryNotifications changes only the expiry notification toggle.
func (s *Store) UpdateExpiryNotifications(enabled bool) error {
	return s.editSettings(func(settings *Settings) {
		settings.ExpiryNotifications = enabled
	})
}

// UpdateTheme changes only the theme.
func (s *Store) UpdateTheme(theme Theme) error {
	return s.editSettings(func(settings *Settings) {
		settings.Theme = theme
	})
}

// UpdateUIScale changes only the UI scale factor.
func (s *Store) UpdateUIScale(scale float64) error {
	return s.editSettings(func(settings *Settings) {
		settings.UIScale = scale
	})
}

// UpdateNotificationTime changes only the daily notification time, given as
// "HH:MM".
func (s *Store) UpdateNotificationTime(clock string) error {
	return s.editSettings(func(settings *Settings) {
		settings.NotificationTime = clock
	})
}

// ClearAll removes the account and resets preferences to defaults.
func (s *Store) ClearAll() error {
	return s.edit(func(p *prefsFile) {
		*p = prefsFile{}
	})
}

// WatchSettings emits the preferences on subscribe and after every change.
func (s *Store) WatchSettings(ctx context.Context) <-chan []Settings {
	return database.Watch(ctx, s.hub, func(ctx context.Context) ([]Settings, error) {
		settings, err := s.GetSettings()
		if err != nil {
			return nil, err
		}
		return []Settings{settings}, nil
	})
}

func (s *Store) editSettings(apply func(*Settings)) error {
	return s.edit(func(p *prefsFile) {
		if p.Settings == nil {
			defaults := DefaultSettings()
			p.Settings = &defaults
		}
		apply(p.Settings)
	})
}

func (s *Store) edit(apply func(*prefsFile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}
	apply(p)
	if err := s.save(p); err != nil {
		return err
	}
	s.hub.Notify()
	return nil
}

func (s *Store) loadLocked() (*prefsFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*prefsFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &prefsFile{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var p prefsFile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &p, nil
}

func (s *Store) save(p *prefsFile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}

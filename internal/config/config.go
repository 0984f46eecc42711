package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string

	// Data paths
	DataDir      string
	DatabasePath string
	PrefsPath    string

	// Session signing secret for login tokens
	SessionSecret string

	// Telegram notification delivery (optional; the notifier falls back to
	// the log when unset)
	TelegramBotToken string
	TelegramChatID   int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	dataDir := os.Getenv("FFRIDGE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	sessionSecret := os.Getenv("FFRIDGE_SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("FFRIDGE_SESSION_SECRET environment variable not set")
	}

	// Telegram config (optional: only required for the notifier daemon)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	var telegramChatID int64
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		id, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not a valid integer: %w", err)
		}
		telegramChatID = id
	}

	return &Config{
		GeminiAPIKey:     geminiAPIKey,
		DataDir:          dataDir,
		DatabasePath:     filepath.Join(dataDir, "ffridge.db"),
		PrefsPath:        filepath.Join(dataDir, "user_preferences.json"),
		SessionSecret:    sessionSecret,
		TelegramBotToken: telegramBotToken,
		TelegramChatID:   telegramChatID,
	}, nil
}

// turjubaan/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the bot's runtime configuration, read from the environment.
type Config struct {
	Token             string
	LogChatID         int64
	DownloadsDir      string
	PreferencesFile   string
	StatusPort        int
	TranscribeTimeout time.Duration
	WorkerCount       int
	JobQueueSize      int
}

// Load reads configuration from the environment, applying defaults for
// everything except the bot token. Invalid numeric values fall back to
// their defaults rather than failing startup.
func Load() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		return nil, fmt.Errorf("no Telegram bot token provided, set the TELEGRAM_BOT_TOKEN environment variable")
	}

	cfg := &Config{
		Token:             token,
		LogChatID:         envInt64("TELEGRAM_LOG_CHAT_ID", 0),
		DownloadsDir:      envString("DOWNLOADS_DIR", "downloads"),
		PreferencesFile:   envString("USER_PREFERENCES_FILE", "user_preferences.json"),
		StatusPort:        envInt("STATUS_PORT", 8080),
		TranscribeTimeout: envDuration("TRANSCRIBE_TIMEOUT", 5*time.Minute),
		WorkerCount:       envInt("WORKER_COUNT", 4),
		JobQueueSize:      envInt("JOB_QUEUE_SIZE", 16),
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

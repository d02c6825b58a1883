package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultListingURL = "https://www.moh.gov.gr/articles/citizen/efhmeries-nosokomeiwn/68-efhmeries-nosokomeiwn-attikhs"
	DefaultTimezone   = "Europe/Athens"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel          string
	Environment       string
	Timezone          string
	Location          *time.Location
	ListingURL        string
	HTTPTimeout       time.Duration
	LookbackDays      int
	RefreshCron       string
	DutySnapshotPath  string
	ShiftSnapshotPath string
	HTTPAddr          string
	TelegramToken     string // empty disables the bot
	AdminTelegramID   int64
}

// BotEnabled reports whether a Telegram token was configured.
func (c *AppConfig) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables already set.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT", "development"))

	cfg.Timezone = getenv("TIMEZONE", DefaultTimezone)
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.ListingURL = getenv("MOH_LISTING_URL", DefaultListingURL)

	cfg.HTTPTimeout, err = time.ParseDuration(getenv("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}

	cfg.LookbackDays, err = strconv.Atoi(getenv("LOOKBACK_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKBACK_DAYS: %w", err)
	}
	if cfg.LookbackDays < 0 {
		return nil, fmt.Errorf("invalid LOOKBACK_DAYS: must not be negative")
	}

	cfg.RefreshCron = getenv("REFRESH_CRON", "0 8 * * *") // 08:00 daily, when duties change hands
	cfg.DutySnapshotPath = getenv("DUTY_SNAPSHOT_PATH", "hospitals_on_duty.json")
	cfg.ShiftSnapshotPath = getenv("SHIFT_SNAPSHOT_PATH", "shifts_cache.json")
	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken != "" {
		adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
		if adminIDStr == "" {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
		}
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

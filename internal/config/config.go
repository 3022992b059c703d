package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	CBRURL        string
	HMACSecret    string
	EncryptionKey []byte

	BaseCurrency       string
	Location           *time.Location
	DefaultHorizonDays int
	MaxHorizonDays     int
	MaxAnchorAgeYears  int

	HealthExcellentRate   decimal.Decimal
	HealthGoodRate        decimal.Decimal
	HealthFairRate        decimal.Decimal
	HealthEmergencyMonths int64

	ReminderSchedule  string
	ReminderDaysAhead int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		CBRURL:           getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		HMACSecret:       getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		BaseCurrency:     getEnv("BASE_CURRENCY", "RUB"),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 8 * * *"),
		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnv("SMTP_PORT", "1025"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "no-reply@cashflow.local"),
	}

	var err error
	if cfg.EncryptionKey, err = hex.DecodeString(getEnv("ENCRYPTION_KEY", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6")); err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.DefaultHorizonDays, err = getEnvInt("DEFAULT_HORIZON_DAYS", 90); err != nil {
		return nil, err
	}
	if cfg.MaxHorizonDays, err = getEnvInt("MAX_HORIZON_DAYS", 730); err != nil {
		return nil, err
	}
	if cfg.MaxAnchorAgeYears, err = getEnvInt("MAX_ANCHOR_AGE_YEARS", 5); err != nil {
		return nil, err
	}
	if cfg.ReminderDaysAhead, err = getEnvInt("REMINDER_DAYS_AHEAD", 3); err != nil {
		return nil, err
	}
	if cfg.HealthExcellentRate, err = getEnvDecimal("HEALTH_EXCELLENT_RATE", "20"); err != nil {
		return nil, err
	}
	if cfg.HealthGoodRate, err = getEnvDecimal("HEALTH_GOOD_RATE", "10"); err != nil {
		return nil, err
	}
	if cfg.HealthFairRate, err = getEnvDecimal("HEALTH_FAIR_RATE", "0"); err != nil {
		return nil, err
	}
	months, err := getEnvInt("HEALTH_EMERGENCY_MONTHS", 3)
	if err != nil {
		return nil, err
	}
	cfg.HealthEmergencyMonths = int64(months)

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if n := len(cfg.EncryptionKey); n != 16 && n != 24 && n != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 16, 24 or 32 bytes, got %d", n)
	}
	if cfg.BaseCurrency == "" {
		return nil, fmt.Errorf("BASE_CURRENCY is required")
	}
	if cfg.MaxHorizonDays < 0 {
		return nil, fmt.Errorf("MAX_HORIZON_DAYS must not be negative, got %d", cfg.MaxHorizonDays)
	}
	if cfg.MaxAnchorAgeYears < 0 {
		return nil, fmt.Errorf("MAX_ANCHOR_AGE_YEARS must not be negative, got %d", cfg.MaxAnchorAgeYears)
	}
	if cfg.DefaultHorizonDays > cfg.MaxHorizonDays {
		return nil, fmt.Errorf("DEFAULT_HORIZON_DAYS (%d) exceeds MAX_HORIZON_DAYS (%d)", cfg.DefaultHorizonDays, cfg.MaxHorizonDays)
	}
	if !cfg.HealthExcellentRate.GreaterThanOrEqual(cfg.HealthGoodRate) || !cfg.HealthGoodRate.GreaterThanOrEqual(cfg.HealthFairRate) {
		return nil, fmt.Errorf("health thresholds must satisfy excellent >= good >= fair")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDecimal(key, defaultVal string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, defaultVal))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return d, nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "RUB", cfg.BaseCurrency)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 90, cfg.DefaultHorizonDays)
	assert.Equal(t, 730, cfg.MaxHorizonDays)
	assert.Len(t, cfg.EncryptionKey, 32)
	assert.Equal(t, "20", cfg.HealthExcellentRate.String())
	assert.Equal(t, int64(3), cfg.HealthEmergencyMonths)
	assert.Equal(t, "0 8 * * *", cfg.ReminderSchedule)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "USD")
	t.Setenv("TIMEZONE", "Europe/Moscow")
	t.Setenv("DEFAULT_HORIZON_DAYS", "30")
	t.Setenv("HEALTH_GOOD_RATE", "12.5")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, 30, cfg.DefaultHorizonDays)
	assert.Equal(t, "12.5", cfg.HealthGoodRate.String())
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad key":       {"ENCRYPTION_KEY", "zz"},
		"short key":     {"ENCRYPTION_KEY", "a1b2"},
		"bad zone":      {"TIMEZONE", "Mars/Olympus"},
		"bad int":       {"MAX_HORIZON_DAYS", "many"},
		"horizon order": {"DEFAULT_HORIZON_DAYS", "1000"},
		"bad rate":      {"HEALTH_FAIR_RATE", "x"},
		"rate order":    {"HEALTH_FAIR_RATE", "50"},
		"empty db":      {"DB_CONN", ""},
		"empty jwt":     {"JWT_SECRET", ""},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_NegativeLimits(t *testing.T) {
	t.Run("anchor age", func(t *testing.T) {
		t.Setenv("MAX_ANCHOR_AGE_YEARS", "-1")
		_, err := NewConfig()
		assert.ErrorContains(t, err, "MAX_ANCHOR_AGE_YEARS")
	})
	t.Run("max horizon", func(t *testing.T) {
		t.Setenv("DEFAULT_HORIZON_DAYS", "-5")
		t.Setenv("MAX_HORIZON_DAYS", "-1")
		_, err := NewConfig()
		assert.ErrorContains(t, err, "MAX_HORIZON_DAYS must not be negative")
	})
	t.Run("zero is allowed", func(t *testing.T) {
		t.Setenv("DEFAULT_HORIZON_DAYS", "0")
		t.Setenv("MAX_HORIZON_DAYS", "0")
		t.Setenv("MAX_ANCHOR_AGE_YEARS", "0")
		cfg, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.MaxAnchorAgeYears)
	})
}

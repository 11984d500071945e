package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 24, cfg.ScanIntervalHours)
	assert.Equal(t, 7, cfg.WarningWindowDays)
	assert.Equal(t, 24*time.Hour, cfg.ScanInterval())
	assert.Equal(t, 7*24*time.Hour, cfg.WarningWindow())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SCAN_INTERVAL_HOURS", "6")
	t.Setenv("WARNING_WINDOW_DAYS", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 6*time.Hour, cfg.ScanInterval())
	assert.Equal(t, 3*24*time.Hour, cfg.WarningWindow())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestBadIntFallsBack(t *testing.T) {
	t.Setenv("SCAN_INTERVAL_HOURS", "sometimes")
	t.Setenv("WARNING_WINDOW_DAYS", "-2")

	cfg := Load()

	assert.Equal(t, 24, cfg.ScanIntervalHours)
	assert.Equal(t, 7, cfg.WarningWindowDays)
}

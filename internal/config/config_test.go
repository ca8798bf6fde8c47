package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "file:test.db")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultWhatsAppNumber, cfg.WhatsAppNumber)
	assert.Equal(t, DefaultCouponCode, cfg.CouponCode)
	assert.EqualValues(t, DefaultCouponPercent, cfg.CouponPercent)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, DefaultBucket, cfg.Storage.Bucket)
	assert.Equal(t, 5*time.Second, cfg.PromoInterval)
	assert.False(t, cfg.Session.Secure)
	assert.True(t, cfg.IsDev())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(db:3306)/store")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADMIN_EMAIL", "  Dono@Loja.com ")
	t.Setenv("COUPON_PERCENT", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "dono@loja.com", cfg.AdminEmail)
	assert.EqualValues(t, 15, cfg.CouponPercent)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DSN")
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DRIVER")
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("SESSION_TTL", "forever")
		_, err := Load()
		assert.ErrorContains(t, err, "SESSION_TTL")
	})
	t.Run("short secret in production", func(t *testing.T) {
		t.Setenv("DB_DSN", "x")
		t.Setenv("APP_ENV", "production")
		t.Setenv("FLASH_SECRET", "short")
		_, err := Load()
		assert.ErrorContains(t, err, "FLASH_SECRET")
	})
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the storefront runtime configuration. Values come from the
// environment; cmd/web loads a .env file first when one exists.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel slog.Level
	DistDir  string

	DB      DBConfig
	Redis   RedisConfig
	Storage StorageConfig
	Session SessionConfig

	AdminEmail     string
	WhatsAppNumber string
	CouponCode     string
	CouponPercent  int64
	PromoInterval  time.Duration
}

type DBConfig struct {
	Driver string // mysql, postgres, sqlite
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	Driver string // local, s3
	Bucket string

	LocalDir       string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type SessionConfig struct {
	CookieName  string
	TTL         time.Duration
	Secure      bool
	FlashSecret []byte
	FlashCookie string
}

const (
	DefaultWhatsAppNumber = "5511991583540"
	DefaultCouponCode     = "URBAN20"
	DefaultCouponPercent  = 20
	DefaultBucket         = "products"
)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	cfg := Config{
		Port:    envOr("PORT", "3000"),
		AppEnv:  envOr("APP_ENV", "development"),
		DistDir: envOr("DIST_DIR", "./dist"),
		DB: DBConfig{
			Driver: strings.ToLower(envOr("DB_DRIVER", "mysql")),
			DSN:    os.Getenv("DB_DSN"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(envOr("STORAGE_DRIVER", "local")),
			Bucket:          envOr("STORAGE_BUCKET", DefaultBucket),
			LocalDir:        envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        os.Getenv("S3_REGION"),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Prefix:        envOr("S3_PREFIX", DefaultBucket),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Session: SessionConfig{
			CookieName:  envOr("SESSION_COOKIE", "ut_session"),
			FlashCookie: envOr("FLASH_COOKIE", "ut_flash"),
			FlashSecret: []byte(os.Getenv("FLASH_SECRET")),
		},
		AdminEmail:     strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		WhatsAppNumber: envOr("WHATSAPP_NUMBER", DefaultWhatsAppNumber),
		CouponCode:     envOr("COUPON_CODE", DefaultCouponCode),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(envOr("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.Redis.TTL, err = envDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Session.TTL, err = envDuration("SESSION_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.PromoInterval, err = envDuration("PROMO_INTERVAL", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Session.Secure, err = envBool("COOKIE_SECURE", cfg.AppEnv == "production"); err != nil {
		return Config{}, err
	}
	pct, err := envInt("COUPON_PERCENT", DefaultCouponPercent)
	if err != nil {
		return Config{}, err
	}
	cfg.CouponPercent = int64(pct)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER: %s", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("DB_DSN environment variable is required")
	}
	if c.CouponPercent <= 0 || c.CouponPercent >= 100 {
		return fmt.Errorf("COUPON_PERCENT must be between 1 and 99, got %d", c.CouponPercent)
	}
	if c.AppEnv == "production" && len(c.Session.FlashSecret) < 32 {
		return fmt.Errorf("FLASH_SECRET must be at least 32 bytes in production")
	}
	return nil
}

// IsDev reports whether the app runs outside production.
func (c Config) IsDev() bool { return c.AppEnv != "production" }

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

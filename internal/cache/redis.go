// Package cache connects the optional Redis instance that fronts the
// product catalog.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"urbantide.com/store/internal/config"
)

// ErrDisabled is returned when no REDIS_ADDR is configured.
var ErrDisabled = errors.New("redis cache disabled")

// Open connects and pings Redis. A failed ping closes the client.
func Open(ctx context.Context, cfg config.RedisConfig, l *slog.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	l.Info("redis connected", slog.String("addr", cfg.Addr), slog.String("ping", pong))
	return client, nil
}

// Close closes the client, tolerating nil.
func Close(client *redis.Client, l *slog.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		l.Warn("redis close failed", slog.Any("err", err))
		return
	}
	l.Info("redis connection closed")
}

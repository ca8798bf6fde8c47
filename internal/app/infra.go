// Package app opens the shared infrastructure used by the web server and
// the operator tools.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"urbantide.com/store/internal/cache"
	"urbantide.com/store/internal/config"
	"urbantide.com/store/internal/database"
	"urbantide.com/store/internal/modules/auth"
	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/storage"
)

// Infra holds the open connections. Redis is nil when the cache is off.
type Infra struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Products products.Store
	Storage  storage.FactoryResult

	log *slog.Logger
}

// Models lists every table the service owns.
func Models() []any {
	return append([]any{&products.Product{}}, auth.Models()...)
}

// Open connects the database, the optional Redis cache and the image
// storage. A Redis outage at startup disables the cache instead of failing.
func Open(ctx context.Context, cfg config.Config, l *slog.Logger) (*Infra, error) {
	db, err := database.Open(ctx, cfg.DB, l)
	if err != nil {
		return nil, err
	}

	st, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	in := &Infra{DB: db, Storage: st, log: l}
	var store products.Store = products.NewRepo(db)

	rdb, err := cache.Open(ctx, cfg.Redis, l)
	switch {
	case errors.Is(err, cache.ErrDisabled):
	case err != nil:
		l.Warn("catalog cache unavailable, reading from database", slog.Any("err", err))
	default:
		in.Redis = rdb
		store = products.NewCachedStore(store, rdb, cfg.Redis.TTL, l)
	}
	in.Products = store

	l.Info("storage ready", slog.String("driver", st.Driver))
	return in, nil
}

func (in *Infra) Close() {
	cache.Close(in.Redis, in.log)
	if err := database.Close(in.DB); err != nil {
		in.log.Warn("database close failed", slog.Any("err", err))
	}
}

package products

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	listKey       = "catalog:products"
	productKeyFmt = "catalog:product:"
)

// CachedStore keeps the product list and single rows in Redis in front of
// another Store. Every write drops the cached list so reads never outlive a
// mutation made through this process.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration, l *slog.Logger) *CachedStore {
	return &CachedStore{Store: inner, rdb: rdb, ttl: ttl, log: l}
}

func (s *CachedStore) List(ctx context.Context) ([]Product, error) {
	if raw, err := s.rdb.Get(ctx, listKey).Bytes(); err == nil {
		var items []Product
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		s.log.Warn("catalog cache entry unreadable", slog.String("key", listKey))
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn("catalog cache read failed, falling back to database", slog.Any("err", err))
	}

	items, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(items); err == nil {
		if err := s.rdb.Set(ctx, listKey, raw, s.ttl).Err(); err != nil {
			s.log.Warn("catalog cache write failed", slog.Any("err", err))
		}
	}
	return items, nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (Product, error) {
	key := productKeyFmt + id
	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var p Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return p, nil
		}
	}

	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if raw, err := json.Marshal(p); err == nil {
		_ = s.rdb.Set(ctx, key, raw, s.ttl).Err()
	}
	return p, nil
}

func (s *CachedStore) Upsert(ctx context.Context, p Product) error {
	defer s.invalidate(ctx, p.ID)
	return s.Store.Upsert(ctx, p)
}

func (s *CachedStore) UpsertMany(ctx context.Context, ps []Product) error {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	defer s.invalidate(ctx, ids...)
	return s.Store.UpsertMany(ctx, ps)
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	defer s.invalidate(ctx, id)
	return s.Store.Delete(ctx, id)
}

func (s *CachedStore) DeleteIDs(ctx context.Context, ids []string) error {
	defer s.invalidate(ctx, ids...)
	return s.Store.DeleteIDs(ctx, ids)
}

func (s *CachedStore) invalidate(ctx context.Context, ids ...string) {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, productKeyFmt+id)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("catalog cache invalidation failed", slog.Any("err", err), slog.Int("keys", len(keys)))
	}
}

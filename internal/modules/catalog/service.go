package catalog

import (
	"context"
	"log/slog"

	"urbantide.com/store/internal/modules/products"
)

// Reader is the read side of the product gateway.
type Reader interface {
	List(ctx context.Context) ([]products.Product, error)
	Get(ctx context.Context, id string) (products.Product, error)
}

type Service struct {
	store Reader
	log   *slog.Logger
}

func NewService(store Reader, l *slog.Logger) *Service {
	return &Service{store: store, log: l}
}

// Browse loads the catalog newest first and applies the filter. Nothing is
// memoized between calls.
func (s *Service) Browse(ctx context.Context, c Criteria) ([]products.Product, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "catalog list failed", slog.Any("err", err))
		return nil, err
	}
	return Filter(items, c), nil
}

// Featured returns the n most recent products.
func (s *Service) Featured(ctx context.Context, n int) ([]products.Product, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

func (s *Service) Product(ctx context.Context, id string) (products.Product, error) {
	return s.store.Get(ctx, id)
}

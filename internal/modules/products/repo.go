package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"urbantide.com/store/internal/database"
)

// Store is the product side of the data gateway. Every call is a single
// round-trip with no transaction around it; concurrent writers win last.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Upsert(ctx context.Context, p Product) error
	UpsertMany(ctx context.Context, ps []Product) error
	Delete(ctx context.Context, id string) error
	DeleteIDs(ctx context.Context, ids []string) error
	IDs(ctx context.Context) ([]string, error)
	Probe(ctx context.Context) error
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

var _ Store = (*Repo)(nil)

// List returns every product, newest first.
func (r *Repo) List(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&items).Error
	return items, classify(err)
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, classify(err)
}

// Upsert inserts p or overwrites every column but id and created_at.
func (r *Repo) Upsert(ctx context.Context, p Product) error {
	return r.UpsertMany(ctx, []Product{p})
}

func (r *Repo) UpsertMany(ctx context.Context, ps []Product) error {
	if len(ps) == 0 {
		return nil
	}
	now := time.Now()
	for i := range ps {
		if ps[i].CreatedAt.IsZero() {
			ps[i].CreatedAt = now
		}
		ps[i].UpdatedAt = now
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&ps).Error
	return classify(err)
}

// Delete removes one row; a missing id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error)
}

func (r *Repo) DeleteIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return classify(r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&Product{}).Error)
}

func (r *Repo) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&Product{}).Pluck("id", &ids).Error
	return ids, classify(err)
}

// Probe selects at most one id to check that the table is reachable.
func (r *Repo) Probe(ctx context.Context) error {
	var ids []string
	err := r.db.WithContext(ctx).Model(&Product{}).Limit(1).Pluck("id", &ids).Error
	return classify(err)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if database.IsMissingTable(err) {
		return fmt.Errorf("%w: %w", ErrTableMissing, err)
	}
	return err
}

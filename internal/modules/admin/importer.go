package admin

import (
	"context"
	"io"
	"log/slog"

	"urbantide.com/store/internal/modules/products"
)

// ImportReport summarizes a CSV import.
type ImportReport struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Errors   []products.RowError `json:"-"`
}

// Import parses a product CSV and upserts the valid rows in one batch. Bad
// rows are skipped and reported; a store failure aborts with no rollback.
func Import(ctx context.Context, store products.Store, r io.Reader, l *slog.Logger) (ImportReport, error) {
	items, rowErrs, err := products.ParseCSV(r)
	if err != nil {
		return ImportReport{}, err
	}
	for _, re := range rowErrs {
		l.Warn("csv row skipped", slog.Int("line", re.Line), slog.Any("err", re.Err))
	}

	rep := ImportReport{Skipped: len(rowErrs), Errors: rowErrs}
	if len(items) == 0 {
		return rep, nil
	}
	if err := store.UpsertMany(ctx, items); err != nil {
		return rep, err
	}
	rep.Imported = len(items)
	l.Info("csv import finished", slog.Int("imported", rep.Imported), slog.Int("skipped", rep.Skipped))
	return rep, nil
}

package products

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"urbantide.com/store/internal/shared/apperr"
)

// RowError describes a CSV row that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

var requiredColumns = []string{"name", "brand", "ref", "price", "category"}

// ParseCSV reads products from a CSV file with a header row. Columns are
// matched by name: id, name, brand, ref, price, oldPrice, category, gender,
// image, stock, sizes (pipe separated). Invalid rows are skipped and returned
// as RowErrors; a missing required column fails the whole file.
func ParseCSV(r io.Reader) ([]Product, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("CSV is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[strings.ToLower(c)]; !ok {
			return nil, nil, fmt.Errorf("CSV header is missing column %q", c)
		}
	}

	var (
		out     []Product
		skipped []RowError
		line    = 1
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}
		p, err := productFromRecord(rec, cols)
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}
		out = append(out, p)
	}
	return out, skipped, nil
}

func productFromRecord(rec []string, cols map[string]int) (Product, error) {
	get := func(name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	price, err := decimal.NewFromString(get("price"))
	if err != nil {
		return Product{}, fmt.Errorf("invalid price %q", get("price"))
	}
	d := Draft{
		ID:       get("id"),
		Name:     ptr(get("name")),
		Brand:    ptr(get("brand")),
		Ref:      ptr(get("ref")),
		Price:    &price,
		Category: ptr(Category(get("category"))),
		Gender:   ptr(GenderMale),
		Image:    get("image"),
		Stock:    ptr(0),
	}
	if g := get("gender"); g != "" {
		d.Gender = ptr(Gender(g))
	}
	if v := get("oldPrice"); v != "" {
		old, err := decimal.NewFromString(v)
		if err != nil {
			return Product{}, fmt.Errorf("invalid oldPrice %q", v)
		}
		d.OldPrice = &old
	}
	if v := get("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Product{}, fmt.Errorf("invalid stock %q", v)
		}
		d.Stock = &n
	}
	if v := get("sizes"); v != "" {
		for _, s := range strings.Split(v, "|") {
			if s = strings.TrimSpace(s); s != "" {
				d.Sizes = append(d.Sizes, s)
			}
		}
	}
	if d.Image != "" {
		d.Images = []string{d.Image}
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	p, err := d.Product(time.Time{})
	if err != nil {
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			return Product{}, fmt.Errorf("invalid fields: %s", formatFields(ae.Fields))
		}
		return Product{}, err
	}
	return p, nil
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" ("+fields[k]+")")
	}
	return strings.Join(parts, ", ")
}

package catalog

import (
	"strings"

	"urbantide.com/store/internal/modules/products"
)

// AllCategories is the sentinel shown first in the category list.
const AllCategories = "Todos"

// Criteria selects the visible part of the catalog.
type Criteria struct {
	Category string
	Query    string
}

// MatchesAll reports whether the category selector is the "all" sentinel.
func (c Criteria) MatchesAll() bool {
	switch strings.ToLower(strings.TrimSpace(c.Category)) {
	case "", "all", strings.ToLower(AllCategories):
		return true
	}
	return false
}

// Filter keeps the products in the selected category whose name or brand
// contains the query, ignoring case. Input order is preserved.
func Filter(items []products.Product, c Criteria) []products.Product {
	all := c.MatchesAll()
	q := strings.ToLower(c.Query)

	out := make([]products.Product, 0, len(items))
	for _, p := range items {
		if !all && string(p.Category) != c.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoryOptions lists the sentinel followed by every category.
func CategoryOptions() []string {
	out := make([]string, 0, len(products.Categories)+1)
	out = append(out, AllCategories)
	for _, c := range products.Categories {
		out = append(out, string(c))
	}
	return out
}

package view

import "urbantide.com/store/internal/modules/products"

// AdminProductRow is a line of the admin product table.
type AdminProductRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ref      string `json:"ref"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	Image    string `json:"image"`
	IsNew    bool   `json:"isNew"`
	// Pending is set when this admin marked the row for deletion.
	Pending bool `json:"pendingDelete"`
}

func NewAdminProductRows(items []products.Product, pendingID string) []AdminProductRow {
	rows := make([]AdminProductRow, 0, len(items))
	for _, p := range items {
		r := AdminProductRow{
			ID:       p.ID,
			Name:     p.Name,
			Ref:      p.Ref,
			Category: string(p.Category),
			Price:    FormatBRL(p.Price),
			Image:    p.Image,
			IsNew:    p.IsNew,
			Pending:  p.ID == pendingID,
		}
		if p.Stock != nil {
			r.Stock = *p.Stock
		}
		rows = append(rows, r)
	}
	return rows
}

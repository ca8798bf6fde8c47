package products

import "errors"

var (
	ErrNotFound     = errors.New("product not found")
	ErrTableMissing = errors.New("products table does not exist")
)

package product

import (
	"github.com/shopspring/decimal"
)

// Product represents a product that can be ordered.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CreateInput holds the fields accepted when creating a product.
type CreateInput struct {
	Name  string          `json:"name"  validate:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

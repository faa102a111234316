package product

import "github.com/shopspring/decimal"

// LowStockThreshold is the stock level below which a product counts as low on stock.
const LowStockThreshold = 10

// Filter represents optional filter parameters for listing products.
type Filter struct {
	NameContains *string          `json:"nameContains,omitempty"`
	PriceGte     *decimal.Decimal `json:"priceGte,omitempty"`
	PriceLte     *decimal.Decimal `json:"priceLte,omitempty"`
	StockGte     *int             `json:"stockGte,omitempty"`
	StockLte     *int             `json:"stockLte,omitempty"`
	LowStock     *bool            `json:"lowStock,omitempty"`
}

// QueryProductsModel represents a filtered, ordered window of products.
type QueryProductsModel struct {
	Filter  Filter   `json:"filter"`
	OrderBy []string `json:"orderBy,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}

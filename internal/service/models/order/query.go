package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filter represents optional filter parameters for listing orders.
type Filter struct {
	TotalAmountGte       *decimal.Decimal `json:"totalAmountGte,omitempty"`
	TotalAmountLte       *decimal.Decimal `json:"totalAmountLte,omitempty"`
	OrderDateGte         *time.Time       `json:"orderDateGte,omitempty"`
	OrderDateLte         *time.Time       `json:"orderDateLte,omitempty"`
	CustomerNameContains *string          `json:"customerNameContains,omitempty"`
	ProductNameContains  *string          `json:"productNameContains,omitempty"`
	ProductID            *int64           `json:"productId,omitempty"`
}

// QueryOrdersModel represents a filtered, ordered window of orders.
type QueryOrdersModel struct {
	Filter  Filter   `json:"filter"`
	OrderBy []string `json:"orderBy,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}

package filter

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
)

// ProductSort lists the fields products can be ordered by.
var ProductSort = Sortable{
	Tiebreak: "p.id",
	Columns: map[string]string{
		"id":    "p.id",
		"name":  "p.name",
		"price": "p.price",
		"stock": "p.stock",
	},
}

// Products returns the predicates selected by f.
func Products(f product.Filter) sq.And {
	predicates := sq.And{}

	if f.NameContains != nil {
		predicates = append(predicates, ContainsFold("p.name", *f.NameContains))
	}
	if f.PriceGte != nil {
		predicates = append(predicates, sq.GtOrEq{"p.price": *f.PriceGte})
	}
	if f.PriceLte != nil {
		predicates = append(predicates, sq.LtOrEq{"p.price": *f.PriceLte})
	}
	if f.StockGte != nil {
		predicates = append(predicates, sq.GtOrEq{"p.stock": *f.StockGte})
	}
	if f.StockLte != nil {
		predicates = append(predicates, sq.LtOrEq{"p.stock": *f.StockLte})
	}
	// low_stock=false places no restriction.
	if f.LowStock != nil && *f.LowStock {
		predicates = append(predicates, sq.Lt{"p.stock": product.LowStockThreshold})
	}

	return predicates
}

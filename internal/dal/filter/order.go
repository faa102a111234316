package filter

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
)

// OrderSort lists the fields orders can be ordered by.
var OrderSort = Sortable{
	Tiebreak: "o.id",
	Columns: map[string]string{
		"id":           "o.id",
		"order_date":   "o.order_date",
		"orderDate":    "o.order_date",
		"total_amount": "o.total_amount",
		"totalAmount":  "o.total_amount",
		"customer":     "o.customer_id",
		"customer_id":  "o.customer_id",
		"customerId":   "o.customer_id",
	},
}

// Orders returns the predicates selected by f.
// Related-entity filters use EXISTS so that each order appears at most once.
func Orders(f order.Filter) sq.And {
	predicates := sq.And{}

	if f.TotalAmountGte != nil {
		predicates = append(predicates, sq.GtOrEq{"o.total_amount": *f.TotalAmountGte})
	}
	if f.TotalAmountLte != nil {
		predicates = append(predicates, sq.LtOrEq{"o.total_amount": *f.TotalAmountLte})
	}
	if f.OrderDateGte != nil {
		predicates = append(predicates, sq.GtOrEq{"o.order_date": f.OrderDateGte.UTC()})
	}
	if f.OrderDateLte != nil {
		predicates = append(predicates, sq.LtOrEq{"o.order_date": f.OrderDateLte.UTC()})
	}
	if f.CustomerNameContains != nil {
		cond, args, _ := ContainsFold("fc.name", *f.CustomerNameContains).ToSql()
		predicates = append(predicates, sq.Expr(
			"EXISTS (SELECT 1 FROM crm_customer fc WHERE fc.id = o.customer_id AND "+cond+")",
			args...,
		))
	}
	if f.ProductNameContains != nil {
		cond, args, _ := ContainsFold("fp.name", *f.ProductNameContains).ToSql()
		predicates = append(predicates, sq.Expr(
			"EXISTS (SELECT 1 FROM crm_order_products fop JOIN crm_product fp ON fp.id = fop.product_id"+
				" WHERE fop.order_id = o.id AND "+cond+")",
			args...,
		))
	}
	if f.ProductID != nil {
		predicates = append(predicates, sq.Expr(
			"EXISTS (SELECT 1 FROM crm_order_products fop WHERE fop.order_id = o.id AND fop.product_id = ?)",
			*f.ProductID,
		))
	}

	return predicates
}

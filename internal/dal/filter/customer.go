package filter

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
)

// CustomerSort lists the fields customers can be ordered by.
var CustomerSort = Sortable{
	Tiebreak: "c.id",
	Columns: map[string]string{
		"id":         "c.id",
		"name":       "c.name",
		"email":      "c.email",
		"phone":      "c.phone",
		"created_at": "c.created_at",
		"createdAt":  "c.created_at",
	},
}

// Customers returns the predicates selected by f.
func Customers(f customer.Filter) sq.And {
	predicates := sq.And{}

	if f.NameContains != nil {
		predicates = append(predicates, ContainsFold("c.name", *f.NameContains))
	}
	if f.EmailContains != nil {
		predicates = append(predicates, ContainsFold("c.email", *f.EmailContains))
	}
	if f.CreatedAtGte != nil {
		predicates = append(predicates, sq.GtOrEq{"c.created_at": f.CreatedAtGte.UTC()})
	}
	if f.CreatedAtLte != nil {
		predicates = append(predicates, sq.LtOrEq{"c.created_at": f.CreatedAtLte.UTC()})
	}
	if f.PhonePrefix != nil {
		predicates = append(predicates, HasPrefix("c.phone", *f.PhonePrefix))
	}

	return predicates
}

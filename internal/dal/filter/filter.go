// Package filter translates listing filters into SQL predicates and orderings.
//
// Every filter is an independent squirrel predicate; a listing applies the
// conjunction of all active predicates. Column names assume the table aliases
// c (crm_customer), p (crm_product) and o (crm_order).
package filter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so that value matches literally.
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// ContainsFold matches rows whose column contains value, ignoring case.
func ContainsFold(column, value string) sq.Sqlizer {
	return sq.Expr(
		"LOWER("+column+") LIKE ? ESCAPE '\\'",
		"%"+escapeLike(strings.ToLower(value))+"%",
	)
}

// HasPrefix matches rows whose column starts with value.
func HasPrefix(column, value string) sq.Sqlizer {
	return sq.Expr(column+" LIKE ? ESCAPE '\\'", escapeLike(value)+"%")
}

// Apply adds the predicates to the query's WHERE clause.
// An empty predicate set leaves the query unrestricted.
func Apply(query sq.SelectBuilder, predicates sq.And) sq.SelectBuilder {
	if len(predicates) == 0 {
		return query
	}

	return query.Where(predicates)
}

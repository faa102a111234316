package filter

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string {
	return &v
}

func TestContainsFoldEscapesWildcards(t *testing.T) {
	sql, args, err := ContainsFold("p.name", "50%_Off").ToSql()
	require.NoError(t, err)

	assert.Equal(t, `LOWER(p.name) LIKE ? ESCAPE '\'`, sql)
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
}

func TestHasPrefix(t *testing.T) {
	sql, args, err := HasPrefix("c.phone", "+1").ToSql()
	require.NoError(t, err)

	assert.Equal(t, `c.phone LIKE ? ESCAPE '\'`, sql)
	assert.Equal(t, []interface{}{"+1%"}, args)
}

func TestCustomersEmptyFilterIsUnrestricted(t *testing.T) {
	assert.Empty(t, Customers(customer.Filter{}))

	query := Apply(sq.Select("c.id").From("crm_customer c"), Customers(customer.Filter{}))
	sql, _, err := query.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT c.id FROM crm_customer c", sql)
}

func TestCustomersFiltersAreConjunctive(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	predicates := Customers(customer.Filter{
		NameContains: strPtr("Ana"),
		CreatedAtGte: &from,
	})
	require.Len(t, predicates, 2)

	sql, args, err := predicates.ToSql()
	require.NoError(t, err)
	assert.Equal(t, `(LOWER(c.name) LIKE ? ESCAPE '\' AND c.created_at >= ?)`, sql)
	assert.Equal(t, []interface{}{"%ana%", from}, args)
}

func TestProductsLowStock(t *testing.T) {
	no := false
	assert.Empty(t, Products(product.Filter{LowStock: &no}))

	yes := true
	sql, args, err := Products(product.Filter{LowStock: &yes}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(p.stock < ?)", sql)
	assert.Equal(t, []interface{}{product.LowStockThreshold}, args)
}

func TestProductsPriceRange(t *testing.T) {
	lo, hi := decimal.NewFromInt(5), decimal.RequireFromString("20.50")
	sql, args, err := Products(product.Filter{PriceGte: &lo, PriceLte: &hi}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(p.price >= ? AND p.price <= ?)", sql)
	assert.Equal(t, []interface{}{lo, hi}, args)
}

func TestOrdersRelatedFiltersUseExists(t *testing.T) {
	productID := int64(7)
	predicates := Orders(order.Filter{
		CustomerNameContains: strPtr("ana"),
		ProductNameContains:  strPtr("Widget"),
		ProductID:            &productID,
	})
	require.Len(t, predicates, 3)

	query := Apply(
		sq.Select("o.id").From("crm_order o").PlaceholderFormat(sq.Dollar),
		predicates,
	)
	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM crm_customer fc WHERE fc.id = o.customer_id AND LOWER(fc.name) LIKE $1")
	assert.Contains(t, sql, "LOWER(fp.name) LIKE $2")
	assert.Contains(t, sql, "fop.product_id = $3")
	assert.Equal(t, []interface{}{"%ana%", "%widget%", int64(7)}, args)
}

func TestSortableOrderBy(t *testing.T) {
	tests := []struct {
		name   string
		sort   Sortable
		fields []string
		want   []string
	}{
		{
			name:   "default order is by id",
			sort:   CustomerSort,
			fields: nil,
			want:   []string{"c.id ASC"},
		},
		{
			name:   "descending and secondary keys",
			sort:   CustomerSort,
			fields: []string{"-name", "email"},
			want:   []string{"c.name DESC", "c.email ASC", "c.id ASC"},
		},
		{
			name:   "explicit id is not duplicated",
			sort:   ProductSort,
			fields: []string{"-id"},
			want:   []string{"p.id DESC"},
		},
		{
			name:   "camel and snake case aliases collapse",
			sort:   OrderSort,
			fields: []string{"-orderDate", "order_date"},
			want:   []string{"o.order_date DESC", "o.id ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sort.OrderBy(tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortableOrderByRejectsUnknownField(t *testing.T) {
	_, err := ProductSort.OrderBy([]string{"name", "-color"})
	require.Error(t, err)

	e, ok := crmerr.As(err)
	require.True(t, ok)
	assert.Equal(t, crmerr.CodeInvalidArgument, e.Code)
	assert.Equal(t, "orderBy", e.Field)
	assert.Contains(t, e.Message, "-color")
}

package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/service/models/order"
)

// IOrderRepository is an interface for the order repository.
type IOrderRepository interface {
	// Insert writes the order row and one association row per product id.
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	// ProductIDs returns the associated product ids keyed by order id.
	ProductIDs(ctx context.Context, orderIDs []int64) (map[int64][]int64, error)
	Query(ctx context.Context, query *order.QueryOrdersModel) ([]order.Order, error)
	Count(ctx context.Context, filter order.Filter) (int, error)
}

package sqlrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/dal/filter"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"o.id AS id",
	"o.customer_id AS customer_id",
	"o.order_date AS order_date",
	"o.total_amount AS total_amount",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id          int64           `db:"id"`
	CustomerId  int64           `db:"customer_id"`
	OrderDate   time.Time       `db:"order_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() order.Order {
	return order.Order{
		ID:          o.Id,
		CustomerID:  o.CustomerId,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: o.TotalAmount,
		ProductIDs:  []int64{}, // Will be populated separately
	}
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:          o.ID,
		CustomerId:  o.CustomerID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
	}
}

// orderProductDal represents a row of the order/product association table.
type orderProductDal struct {
	OrderId   int64 `db:"order_id"`
	ProductId int64 `db:"product_id"`
}

// OrderRepository represents an SQL order repository.
type OrderRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewOrderRepository creates a new SQL order repository.
func NewOrderRepository(conn sqlx.ExtContext, sb sq.StatementBuilderType) *OrderRepository {
	return &OrderRepository{
		conn: conn,
		sb:   sb,
	}
}

// Insert inserts the order row and its product associations.
// Callers must run it inside a transaction for the writes to be atomic.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	query, args, err := r.sb.
		Insert("crm_order").
		Columns("customer_id", "order_date", "total_amount").
		Values(dal.CustomerId, dal.OrderDate, dal.TotalAmount).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&dal.Id); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if len(o.ProductIDs) > 0 {
		builder := r.sb.Insert("crm_order_products").Columns("order_id", "product_id")
		for _, productID := range o.ProductIDs {
			builder = builder.Values(dal.Id, productID)
		}

		query, args, err = builder.ToSql()
		if err != nil {
			return order.Order{}, fmt.Errorf("failed to build order products insert query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return order.Order{}, fmt.Errorf("failed to insert order products: %w", err)
		}
	}

	result := dal.ToModel()
	result.ProductIDs = append(result.ProductIDs, o.ProductIDs...)

	return result, nil
}

// ProductIDs returns the product ids associated with each of the given orders.
func (r *OrderRepository) ProductIDs(ctx context.Context, orderIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query, args, err := r.sb.
		Select("op.order_id AS order_id", "op.product_id AS product_id").
		From("crm_order_products op").
		Where(sq.Eq{"op.order_id": orderIDs}).
		OrderBy("op.order_id ASC", "op.product_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order products query: %w", err)
	}

	var rows []orderProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query order products: %w", err)
	}

	for _, row := range rows {
		result[row.OrderId] = append(result[row.OrderId], row.ProductId)
	}

	return result, nil
}

// Query retrieves a window of orders matching the filter, in the requested order.
// ProductIDs are not populated.
func (r *OrderRepository) Query(ctx context.Context, q *order.QueryOrdersModel) ([]order.Order, error) {
	orderBy, err := filter.OrderSort.OrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}

	query := filter.Apply(
		r.sb.Select(orderColumns...).From("crm_order o"),
		filter.Orders(q.Filter),
	).OrderBy(orderBy...)

	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	if q.Offset > 0 {
		query = query.Offset(uint64(q.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dals []OrderDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	result := make([]order.Order, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

// Count returns the number of orders matching the filter.
func (r *OrderRepository) Count(ctx context.Context, f order.Filter) (int, error) {
	query, args, err := filter.Apply(
		r.sb.Select("COUNT(*)").From("crm_order o"),
		filter.Orders(f),
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

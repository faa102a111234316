package crmsvc

import (
	"context"
	"errors"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// CreateOrder stores an order for an existing customer.
// Product ids that do not resolve are dropped and repeated ids count once.
// The order and its product associations are written in one transaction.
func (s *CRMService) CreateOrder(ctx context.Context, in order.CreateInput) (order.Order, error) {
	ctx, span := tracer.Start(ctx, "CRMService.CreateOrder")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback() }()

	owner, err := work.CustomerRepository().GetByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return order.Order{}, crmerr.ErrCustomerNotFound
		}

		return order.Order{}, err
	}

	if len(in.ProductIDs) == 0 {
		return order.Order{}, crmerr.ErrEmptyProductList
	}

	products, err := work.ProductRepository().GetByIDs(ctx, lo.Uniq(in.ProductIDs))
	if err != nil {
		return order.Order{}, err
	}
	if len(products) == 0 {
		return order.Order{}, crmerr.ErrNoValidProducts
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	if total.GreaterThanOrEqual(maxAmount) {
		return order.Order{}, crmerr.ErrTotalTooLarge
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		CustomerID:  owner.ID,
		ProductIDs:  lo.Map(products, func(p product.Product, _ int) int64 { return p.ID }),
		OrderDate:   orderDate.UTC().Truncate(time.Microsecond),
		TotalAmount: total,
	})
	if err != nil {
		return order.Order{}, err
	}

	created.Customer = &owner
	created.Products = products

	if err := s.recordEvent(ctx, work, RoutingKeyOrderCreated, created); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(); err != nil {
		return order.Order{}, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", created.ID),
		attribute.Int("order.products", len(products)),
	)

	return created, nil
}

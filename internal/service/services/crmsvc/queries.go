package crmsvc

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/dal/filter"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/page"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ListCustomers returns the window of customers selected by args.
func (s *CRMService) ListCustomers(
	ctx context.Context,
	f customer.Filter,
	orderBy []string,
	args page.Args,
) (page.Page[customer.Customer], error) {
	ctx, span := tracer.Start(ctx, "CRMService.ListCustomers")
	defer span.End()

	if _, err := filter.CustomerSort.OrderBy(orderBy); err != nil {
		return page.Page[customer.Customer]{}, err
	}

	work := s.newUOW()

	total, err := work.CustomerRepository().Count(ctx, f)
	if err != nil {
		return page.Page[customer.Customer]{}, err
	}

	window, err := args.Resolve(total, s.maxPageSize)
	if err != nil {
		return page.Page[customer.Customer]{}, err
	}
	traceWindow(span, total, window)

	if window.Limit == 0 {
		return page.NewPage([]customer.Customer{}, window, total), nil
	}

	customers, err := work.CustomerRepository().Query(ctx, &customer.QueryCustomersModel{
		Filter:  f,
		OrderBy: orderBy,
		Limit:   window.Limit,
		Offset:  window.Offset,
	})
	if err != nil {
		return page.Page[customer.Customer]{}, err
	}

	return page.NewPage(customers, window, total), nil
}

// ListProducts returns the window of products selected by args.
func (s *CRMService) ListProducts(
	ctx context.Context,
	f product.Filter,
	orderBy []string,
	args page.Args,
) (page.Page[product.Product], error) {
	ctx, span := tracer.Start(ctx, "CRMService.ListProducts")
	defer span.End()

	if _, err := filter.ProductSort.OrderBy(orderBy); err != nil {
		return page.Page[product.Product]{}, err
	}

	work := s.newUOW()

	total, err := work.ProductRepository().Count(ctx, f)
	if err != nil {
		return page.Page[product.Product]{}, err
	}

	window, err := args.Resolve(total, s.maxPageSize)
	if err != nil {
		return page.Page[product.Product]{}, err
	}
	traceWindow(span, total, window)

	if window.Limit == 0 {
		return page.NewPage([]product.Product{}, window, total), nil
	}

	products, err := work.ProductRepository().Query(ctx, &product.QueryProductsModel{
		Filter:  f,
		OrderBy: orderBy,
		Limit:   window.Limit,
		Offset:  window.Offset,
	})
	if err != nil {
		return page.Page[product.Product]{}, err
	}

	return page.NewPage(products, window, total), nil
}

// ListOrders returns the window of orders selected by args,
// each hydrated with its customer and products.
func (s *CRMService) ListOrders(
	ctx context.Context,
	f order.Filter,
	orderBy []string,
	args page.Args,
) (page.Page[order.Order], error) {
	ctx, span := tracer.Start(ctx, "CRMService.ListOrders")
	defer span.End()

	if _, err := filter.OrderSort.OrderBy(orderBy); err != nil {
		return page.Page[order.Order]{}, err
	}

	work := s.newUOW()

	total, err := work.OrderRepository().Count(ctx, f)
	if err != nil {
		return page.Page[order.Order]{}, err
	}

	window, err := args.Resolve(total, s.maxPageSize)
	if err != nil {
		return page.Page[order.Order]{}, err
	}
	traceWindow(span, total, window)

	if window.Limit == 0 {
		return page.NewPage([]order.Order{}, window, total), nil
	}

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		Filter:  f,
		OrderBy: orderBy,
		Limit:   window.Limit,
		Offset:  window.Offset,
	})
	if err != nil {
		return page.Page[order.Order]{}, err
	}

	if err := s.hydrateOrders(ctx, work, orders); err != nil {
		return page.Page[order.Order]{}, err
	}

	return page.NewPage(orders, window, total), nil
}

// hydrateOrders loads the customers and products of orders with one query per relation.
func (s *CRMService) hydrateOrders(ctx context.Context, work unitOfWork, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := lo.Map(orders, func(o order.Order, _ int) int64 { return o.ID })
	productIDs, err := work.OrderRepository().ProductIDs(ctx, orderIDs)
	if err != nil {
		return err
	}

	customerIDs := lo.Uniq(lo.Map(orders, func(o order.Order, _ int) int64 { return o.CustomerID }))
	customers, err := work.CustomerRepository().GetByIDs(ctx, customerIDs)
	if err != nil {
		return err
	}
	customersByID := lo.KeyBy(customers, func(c customer.Customer) int64 { return c.ID })

	allProductIDs := lo.Uniq(lo.Flatten(lo.Values(productIDs)))
	products, err := work.ProductRepository().GetByIDs(ctx, allProductIDs)
	if err != nil {
		return err
	}
	productsByID := lo.KeyBy(products, func(p product.Product) int64 { return p.ID })

	for i := range orders {
		if c, ok := customersByID[orders[i].CustomerID]; ok {
			orders[i].Customer = &c
		}

		orders[i].ProductIDs = productIDs[orders[i].ID]
		if orders[i].ProductIDs == nil {
			orders[i].ProductIDs = []int64{}
		}

		orders[i].Products = make([]product.Product, 0, len(orders[i].ProductIDs))
		for _, id := range orders[i].ProductIDs {
			if p, ok := productsByID[id]; ok {
				orders[i].Products = append(orders[i].Products, p)
			}
		}
	}

	return nil
}

func traceWindow(span trace.Span, total int, w page.Window) {
	span.SetAttributes(
		attribute.Int("page.total", total),
		attribute.Int("page.offset", w.Offset),
		attribute.Int("page.limit", w.Limit),
	)
}

package crmsvc

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"go.opentelemetry.io/otel/attribute"
)

// CreateProduct validates and stores a product.
// The price is kept with two decimal places.
func (s *CRMService) CreateProduct(ctx context.Context, in product.CreateInput) (product.Product, error) {
	ctx, span := tracer.Start(ctx, "CRMService.CreateProduct")
	defer span.End()

	if err := validate.Struct(in); err != nil {
		return product.Product{}, crmerr.Invalid("name", "Name is required")
	}

	price := in.Price.Round(2)
	if !price.IsPositive() {
		return product.Product{}, crmerr.ErrInvalidPrice
	}
	if price.GreaterThanOrEqual(maxAmount) {
		return product.Product{}, crmerr.ErrPriceTooLarge
	}

	if in.Stock < 0 {
		return product.Product{}, crmerr.ErrNegativeStock
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return product.Product{}, err
	}
	defer func() { _ = work.Rollback() }()

	created, err := work.ProductRepository().Insert(ctx, product.Product{
		Name:  in.Name,
		Price: price,
		Stock: in.Stock,
	})
	if err != nil {
		return product.Product{}, err
	}

	if err := s.recordEvent(ctx, work, RoutingKeyProductCreated, created); err != nil {
		return product.Product{}, err
	}

	if err := work.Commit(); err != nil {
		return product.Product{}, err
	}

	span.SetAttributes(attribute.Int64("product.id", created.ID))

	return created, nil
}

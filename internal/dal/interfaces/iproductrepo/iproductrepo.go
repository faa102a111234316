package iproductrepo

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/service/models/product"
)

// IProductRepository is an interface for the product repository.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error)
	Query(ctx context.Context, query *product.QueryProductsModel) ([]product.Product, error)
	Count(ctx context.Context, filter product.Filter) (int, error)
}

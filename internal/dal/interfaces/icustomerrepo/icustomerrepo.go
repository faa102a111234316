package icustomerrepo

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer repository.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id int64) (customer.Customer, error)
	GetByIDs(ctx context.Context, ids []int64) ([]customer.Customer, error)
	Query(ctx context.Context, query *customer.QueryCustomersModel) ([]customer.Customer, error)
	Count(ctx context.Context, filter customer.Filter) (int, error)
}

package uow

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/iproductrepo"
	customerrepo "github.com/corray333/backend-labs/crm/internal/dal/repositories/customer/sql"
	orderrepo "github.com/corray333/backend-labs/crm/internal/dal/repositories/order/sql"
	outboxrepo "github.com/corray333/backend-labs/crm/internal/dal/repositories/outbox/sql"
	productrepo "github.com/corray333/backend-labs/crm/internal/dal/repositories/product/sql"
	"github.com/jmoiron/sqlx"
)

// UnitOfWork groups repository calls into a single transaction.
// Until Begin is called the repositories run directly against the database.
type UnitOfWork struct {
	db   *sqlx.DB
	sb   sq.StatementBuilderType
	tx   *sqlx.Tx
	done bool

	customerRepo icustomerrepo.ICustomerRepository
	productRepo  iproductrepo.IProductRepository
	orderRepo    iorderrepo.IOrderRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work over the given database client.
func NewUnitOfWork(client *database.Client) *UnitOfWork {
	u := &UnitOfWork{
		db: client.DB(),
		sb: client.Builder(),
	}
	u.bind(client.DB())

	return u
}

func (u *UnitOfWork) bind(conn sqlx.ExtContext) {
	u.customerRepo = customerrepo.NewCustomerRepository(conn, u.sb)
	u.productRepo = productrepo.NewProductRepository(conn, u.sb)
	u.orderRepo = orderrepo.NewOrderRepository(conn, u.sb)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn, u.sb)
}

// CustomerRepository returns the customer repository bound to the current transaction.
func (u *UnitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

// ProductRepository returns the product repository bound to the current transaction.
func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

// OrderRepository returns the order repository bound to the current transaction.
func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

// OutboxRepository returns the outbox repository bound to the current transaction.
func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds every repository to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if any.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil || u.done {
		return nil
	}

	u.done = true
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback aborts the transaction. It is a no-op once Commit or Rollback has run,
// so it can be deferred right after Begin.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil || u.done {
		return nil
	}

	u.done = true

	return u.tx.Rollback()
}

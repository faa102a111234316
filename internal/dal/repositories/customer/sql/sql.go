package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/dal/filter"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/jmoiron/sqlx"
)

var customerColumns = []string{
	"c.id AS id",
	"c.name AS name",
	"c.email AS email",
	"c.phone AS phone",
	"c.created_at AS created_at",
}

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id        int64          `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	CreatedAt time.Time      `db:"created_at"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() customer.Customer {
	return customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone.String,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

// CustomerDalFromModel converts service layer Customer model to CustomerDal.
func CustomerDalFromModel(c *customer.Customer) *CustomerDal {
	return &CustomerDal{
		Id:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     sql.NullString{String: c.Phone, Valid: c.Phone != ""},
		CreatedAt: c.CreatedAt,
	}
}

// CustomerRepository represents an SQL customer repository.
type CustomerRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewCustomerRepository creates a new SQL customer repository.
func NewCustomerRepository(conn sqlx.ExtContext, sb sq.StatementBuilderType) *CustomerRepository {
	return &CustomerRepository{
		conn: conn,
		sb:   sb,
	}
}

// Insert inserts a customer and returns it with its generated ID.
func (r *CustomerRepository) Insert(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	dal := CustomerDalFromModel(&c)

	query, args, err := r.sb.
		Insert("crm_customer").
		Columns("name", "email", "phone", "created_at").
		Values(dal.Name, dal.Email, dal.Phone, dal.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&dal.Id); err != nil {
		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return dal.ToModel(), nil
}

// ExistsByEmail reports whether a customer with exactly this email exists.
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := r.sb.
		Select("1").
		From("crm_customer c").
		Where(sq.Eq{"c.email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var one int
	err = r.conn.QueryRowxContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}

	return true, nil
}

// GetByID retrieves a customer by ID.
// Returns database.ErrNotFound if it does not exist.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (customer.Customer, error) {
	query, args, err := r.sb.
		Select(customerColumns...).
		From("crm_customer c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal CustomerDal
	err = sqlx.GetContext(ctx, r.conn, &dal, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return customer.Customer{}, database.ErrNotFound
	}
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByIDs retrieves the customers with the given IDs. Unknown IDs are skipped.
func (r *CustomerRepository) GetByIDs(ctx context.Context, ids []int64) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return []customer.Customer{}, nil
	}

	query, args, err := r.sb.
		Select(customerColumns...).
		From("crm_customer c").
		Where(sq.Eq{"c.id": ids}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.selectCustomers(ctx, query, args)
}

// Query retrieves a window of customers matching the filter, in the requested order.
func (r *CustomerRepository) Query(
	ctx context.Context,
	q *customer.QueryCustomersModel,
) ([]customer.Customer, error) {
	orderBy, err := filter.CustomerSort.OrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}

	query := filter.Apply(
		r.sb.Select(customerColumns...).From("crm_customer c"),
		filter.Customers(q.Filter),
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

	return r.selectCustomers(ctx, stmt, args)
}

// Count returns the number of customers matching the filter.
func (r *CustomerRepository) Count(ctx context.Context, f customer.Filter) (int, error) {
	query, args, err := filter.Apply(
		r.sb.Select("COUNT(*)").From("crm_customer c"),
		filter.Customers(f),
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return total, nil
}

func (r *CustomerRepository) selectCustomers(
	ctx context.Context,
	query string,
	args []interface{},
) ([]customer.Customer, error) {
	var dals []CustomerDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	result := make([]customer.Customer, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

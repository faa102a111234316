package sqlrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/crm/internal/dal/filter"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var productColumns = []string{
	"p.id AS id",
	"p.name AS name",
	"p.price AS price",
	"p.stock AS stock",
}

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id    int64           `db:"id"`
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
	Stock int             `db:"stock"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() product.Product {
	return product.Product{
		ID:    p.Id,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// ProductDalFromModel converts service layer Product model to ProductDal.
func ProductDalFromModel(p *product.Product) *ProductDal {
	return &ProductDal{
		Id:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// ProductRepository represents an SQL product repository.
type ProductRepository struct {
	conn sqlx.ExtContext
	sb   sq.StatementBuilderType
}

// NewProductRepository creates a new SQL product repository.
func NewProductRepository(conn sqlx.ExtContext, sb sq.StatementBuilderType) *ProductRepository {
	return &ProductRepository{
		conn: conn,
		sb:   sb,
	}
}

// Insert inserts a product and returns it with its generated ID.
func (r *ProductRepository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	dal := ProductDalFromModel(&p)

	query, args, err := r.sb.
		Insert("crm_product").
		Columns("name", "price", "stock").
		Values(dal.Name, dal.Price, dal.Stock).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&dal.Id); err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByIDs retrieves the products with the given IDs. Unknown IDs are skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	query, args, err := r.sb.
		Select(productColumns...).
		From("crm_product p").
		Where(sq.Eq{"p.id": ids}).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.selectProducts(ctx, query, args)
}

// Query retrieves a window of products matching the filter, in the requested order.
func (r *ProductRepository) Query(
	ctx context.Context,
	q *product.QueryProductsModel,
) ([]product.Product, error) {
	orderBy, err := filter.ProductSort.OrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}

	query := filter.Apply(
		r.sb.Select(productColumns...).From("crm_product p"),
		filter.Products(q.Filter),
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

	return r.selectProducts(ctx, stmt, args)
}

// Count returns the number of products matching the filter.
func (r *ProductRepository) Count(ctx context.Context, f product.Filter) (int, error) {
	query, args, err := filter.Apply(
		r.sb.Select("COUNT(*)").From("crm_product p"),
		filter.Products(f),
	).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

func (r *ProductRepository) selectProducts(
	ctx context.Context,
	query string,
	args []interface{},
) ([]product.Product, error) {
	var dals []ProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	result := make([]product.Product, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}

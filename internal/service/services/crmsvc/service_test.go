package crmsvc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/database/databasetest"
	"github.com/corray333/backend-labs/crm/internal/dal/uow"
	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/outbox"
	"github.com/corray333/backend-labs/crm/internal/service/models/page"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/corray333/backend-labs/crm/internal/service/services/crmsvc"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *crmsvc.CRMService {
	t.Helper()

	return crmsvc.MustNewCRMService(
		crmsvc.WithDatabaseClient(databasetest.NewSQLite(t)),
		crmsvc.WithMaxPageSize(100),
	)
}

func mustCustomer(t *testing.T, svc *crmsvc.CRMService, name, email, phone string) customer.Customer {
	t.Helper()

	c, err := svc.CreateCustomer(context.Background(), customer.CreateInput{Name: name, Email: email, Phone: phone})
	require.NoError(t, err)

	return c
}

func mustProduct(t *testing.T, svc *crmsvc.CRMService, name, price string, stock int) product.Product {
	t.Helper()

	p, err := svc.CreateProduct(context.Background(), product.CreateInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.NoError(t, err)

	return p
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateCustomer(ctx, customer.CreateInput{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "+1234567890", created.Phone)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)

	_, err = svc.CreateCustomer(ctx, customer.CreateInput{Name: "Alice 2", Email: "alice@example.com"})
	require.ErrorIs(t, err, crmerr.ErrDuplicateEmail)

	listed, err := svc.ListCustomers(ctx, customer.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, 1, listed.Total)
}

func TestCreateCustomerDuplicateCheckedBeforePhone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	mustCustomer(t, svc, "Bob", "bob@example.com", "")

	_, err := svc.CreateCustomer(ctx, customer.CreateInput{Name: "Bob", Email: "bob@example.com", Phone: "abc"})
	assert.ErrorIs(t, err, crmerr.ErrDuplicateEmail)
}

func TestCreateCustomerPhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{phone: "", valid: true},
		{phone: "+1234567890", valid: true},
		{phone: "1234567", valid: true},
		{phone: "123456789012345", valid: true},
		{phone: "123-456-7890", valid: true},
		{phone: "123456", valid: false},
		{phone: "1234567890123456", valid: false},
		{phone: "abc", valid: false},
		{phone: "+123-456-7890", valid: false},
		{phone: "123-4567-890", valid: false},
	}

	svc := newService(t)

	for i, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.phone), func(t *testing.T) {
			assert.Equal(t, tt.valid, crmsvc.ValidPhone(tt.phone))

			_, err := svc.CreateCustomer(context.Background(), customer.CreateInput{
				Name:  "Phone",
				Email: fmt.Sprintf("phone%d@example.com", i),
				Phone: tt.phone,
			})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, crmerr.ErrInvalidPhoneFormat)
			}
		})
	}
}

func TestCreateCustomerRequiresNameAndEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateCustomer(context.Background(), customer.CreateInput{Name: "  ", Email: "x@example.com"})
	assert.ErrorIs(t, err, crmsvc.ErrNameEmailRequired)

	_, err = svc.CreateCustomer(context.Background(), customer.CreateInput{Name: "X"})
	assert.ErrorIs(t, err, crmsvc.ErrNameEmailRequired)
}

func TestBulkCreateCustomers(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	mustCustomer(t, svc, "Existing", "dup@example.com", "")

	result := svc.BulkCreateCustomers(ctx, []customer.CreateInput{
		{Name: "One", Email: "one@example.com"},
		{Name: "Two", Email: "dup@example.com"},
		{Name: "Three", Email: "three@example.com", Phone: "123-456-7890"},
	})

	require.Len(t, result.Customers, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Email dup@example.com already exists", result.Errors[0])
	assert.Equal(t, "one@example.com", result.Customers[0].Email)
	assert.Equal(t, "three@example.com", result.Customers[1].Email)
}

func TestBulkCreateCustomersWithinCall(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	result := svc.BulkCreateCustomers(ctx, []customer.CreateInput{
		{Name: "A", Email: "same@example.com"},
		{Name: "B", Email: "same@example.com"},
		{Name: "C", Email: "c@example.com", Phone: "nope"},
		{Name: "", Email: "d@example.com"},
	})

	require.Len(t, result.Customers, 1)
	assert.Equal(t, []string{
		"Email same@example.com already exists",
		"Invalid phone format for c@example.com",
		"Name and email are required",
	}, result.Errors)

	listed, err := svc.ListCustomers(ctx, customer.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, 1, listed.Total)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	tests := []struct {
		name    string
		price   string
		stock   int
		wantErr error
	}{
		{name: "zero price", price: "0", wantErr: crmerr.ErrInvalidPrice},
		{name: "negative price", price: "-5", wantErr: crmerr.ErrInvalidPrice},
		{name: "price rounds to zero", price: "0.004", wantErr: crmerr.ErrInvalidPrice},
		{name: "negative stock", price: "10", stock: -1, wantErr: crmerr.ErrNegativeStock},
		{name: "price at column limit", price: "100000000", wantErr: crmerr.ErrPriceTooLarge},
		{name: "price rounds up to column limit", price: "99999999.999", wantErr: crmerr.ErrPriceTooLarge},
		{name: "valid", price: "999.999", stock: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.CreateProduct(ctx, product.CreateInput{
				Name:  tt.name,
				Price: decimal.RequireFromString(tt.price),
				Stock: tt.stock,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString("1000").Equal(p.Price), p.Price.String())
			assert.Equal(t, tt.stock, p.Stock)
		})
	}

	listed, err := svc.ListProducts(ctx, product.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, 1, listed.Total)
}

func TestCreateOrderTotalOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	c := mustCustomer(t, svc, "Dave", "dave@example.com", "")
	yacht := mustProduct(t, svc, "Yacht", "99999999.99", 1)
	jet := mustProduct(t, svc, "Jet", "0.01", 1)

	_, err := svc.CreateOrder(ctx, order.CreateInput{
		CustomerID: c.ID,
		ProductIDs: []int64{yacht.ID, jet.ID},
	})
	assert.ErrorIs(t, err, crmerr.ErrTotalTooLarge)

	listed, err := svc.ListOrders(ctx, order.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	assert.Zero(t, listed.Total)

	created, err := svc.CreateOrder(ctx, order.CreateInput{CustomerID: c.ID, ProductIDs: []int64{yacht.ID}})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99999999.99").Equal(created.TotalAmount), created.TotalAmount.String())
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	c := mustCustomer(t, svc, "Carol", "carol@example.com", "")
	laptop := mustProduct(t, svc, "Laptop", "999.99", 10)
	mouse := mustProduct(t, svc, "Mouse", "25.50", 100)

	created, err := svc.CreateOrder(ctx, order.CreateInput{
		CustomerID: c.ID,
		ProductIDs: []int64{laptop.ID, mouse.ID, mouse.ID, 9999},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1025.49").Equal(created.TotalAmount), created.TotalAmount.String())
	assert.ElementsMatch(t, []int64{laptop.ID, mouse.ID}, created.ProductIDs)
	require.NotNil(t, created.Customer)
	assert.Equal(t, c.ID, created.Customer.ID)

	listed, err := svc.ListOrders(ctx, order.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	got := listed.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []int64{laptop.ID, mouse.ID}, got.ProductIDs)
	assert.Equal(t, []string{"Laptop", "Mouse"}, lo.Map(got.Products, func(p product.Product, _ int) string { return p.Name }))
	require.NotNil(t, got.Customer)
	assert.Equal(t, "carol@example.com", got.Customer.Email)
	assert.True(t, created.TotalAmount.Equal(got.TotalAmount))
}

func TestCreateOrderHonorsOrderDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	c := mustCustomer(t, svc, "Dan", "dan@example.com", "")
	p := mustProduct(t, svc, "Pen", "1.00", 1)
	when := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	created, err := svc.CreateOrder(ctx, order.CreateInput{CustomerID: c.ID, ProductIDs: []int64{p.ID}, OrderDate: &when})
	require.NoError(t, err)
	assert.True(t, when.Equal(created.OrderDate))

	listed, err := svc.ListOrders(ctx, order.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.True(t, when.Equal(listed.Items[0].OrderDate), listed.Items[0].OrderDate.String())
}

func TestCreateOrderFailures(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	c := mustCustomer(t, svc, "Eve", "eve@example.com", "")
	p := mustProduct(t, svc, "Book", "12.00", 3)

	tests := []struct {
		name    string
		input   order.CreateInput
		wantErr error
	}{
		{name: "unknown customer", input: order.CreateInput{CustomerID: 9999, ProductIDs: []int64{p.ID}}, wantErr: crmerr.ErrCustomerNotFound},
		{name: "no products", input: order.CreateInput{CustomerID: c.ID, ProductIDs: []int64{}}, wantErr: crmerr.ErrEmptyProductList},
		{name: "no valid products", input: order.CreateInput{CustomerID: c.ID, ProductIDs: []int64{9998, 9999}}, wantErr: crmerr.ErrNoValidProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	listed, err := svc.ListOrders(ctx, order.Filter{}, nil, page.Args{})
	require.NoError(t, err)
	assert.Zero(t, listed.Total)
}

func TestListCustomersFiltersAreConjunctive(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	mustCustomer(t, svc, "Alice Smith", "alice@corp.com", "+15550001")
	mustCustomer(t, svc, "Alice Jones", "ajones@home.org", "+44700001")
	mustCustomer(t, svc, "Bob Smith", "bob@corp.com", "+15550002")

	listed, err := svc.ListCustomers(ctx, customer.Filter{
		NameContains:  lo.ToPtr("alice"),
		EmailContains: lo.ToPtr("CORP"),
	}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Alice Smith", listed.Items[0].Name)

	listed, err = svc.ListCustomers(ctx, customer.Filter{PhonePrefix: lo.ToPtr("+1")}, []string{"-name"}, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob Smith", "Alice Smith"}, lo.Map(listed.Items, func(c customer.Customer, _ int) string { return c.Name }))

	future := time.Now().Add(time.Hour)
	listed, err = svc.ListCustomers(ctx, customer.Filter{CreatedAtGte: &future}, nil, page.Args{})
	require.NoError(t, err)
	assert.Empty(t, listed.Items)
}

func TestListProductsFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	mustProduct(t, svc, "Laptop", "999.99", 5)
	mustProduct(t, svc, "Mouse", "25.50", 100)
	mustProduct(t, svc, "Cable", "5.00", 9)

	listed, err := svc.ListProducts(ctx, product.Filter{LowStock: lo.ToPtr(true)}, []string{"name"}, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cable", "Laptop"}, lo.Map(listed.Items, func(p product.Product, _ int) string { return p.Name }))

	listed, err = svc.ListProducts(ctx, product.Filter{
		PriceGte: lo.ToPtr(decimal.RequireFromString("10")),
		PriceLte: lo.ToPtr(decimal.RequireFromString("1000")),
	}, []string{"-price"}, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop", "Mouse"}, lo.Map(listed.Items, func(p product.Product, _ int) string { return p.Name }))

	listed, err = svc.ListProducts(ctx, product.Filter{LowStock: lo.ToPtr(false)}, nil, page.Args{})
	require.NoError(t, err)
	assert.Equal(t, 3, listed.Total)
}

func TestListOrdersRelatedFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	alice := mustCustomer(t, svc, "Alice", "alice@example.com", "")
	bob := mustCustomer(t, svc, "Bob", "bob@example.com", "")
	redPen := mustProduct(t, svc, "Red Pen", "2.00", 50)
	bluePen := mustProduct(t, svc, "Blue Pen", "3.00", 50)
	notebook := mustProduct(t, svc, "Notebook", "10.00", 50)

	first, err := svc.CreateOrder(ctx, order.CreateInput{CustomerID: alice.ID, ProductIDs: []int64{redPen.ID, bluePen.ID}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, order.CreateInput{CustomerID: bob.ID, ProductIDs: []int64{notebook.ID}})
	require.NoError(t, err)

	listed, err := svc.ListOrders(ctx, order.Filter{ProductNameContains: lo.ToPtr("pen")}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, first.ID, listed.Items[0].ID)
	assert.Equal(t, 1, listed.Total)

	listed, err = svc.ListOrders(ctx, order.Filter{CustomerNameContains: lo.ToPtr("BOB")}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, bob.ID, listed.Items[0].CustomerID)

	listed, err = svc.ListOrders(ctx, order.Filter{
		ProductID:      &notebook.ID,
		TotalAmountGte: lo.ToPtr(decimal.RequireFromString("6")),
	}, nil, page.Args{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)

	listed, err = svc.ListOrders(ctx, order.Filter{
		ProductID:      &redPen.ID,
		TotalAmountGte: lo.ToPtr(decimal.RequireFromString("6")),
	}, nil, page.Args{})
	require.NoError(t, err)
	assert.Empty(t, listed.Items)
}

func TestListPaginationIsStable(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	for i := range 7 {
		mustCustomer(t, svc, "Same Name", fmt.Sprintf("c%d@example.com", i), "")
	}

	var seen []int64
	args := page.Args{First: lo.ToPtr(3)}
	for {
		p, err := svc.ListCustomers(ctx, customer.Filter{}, []string{"name"}, args)
		require.NoError(t, err)
		for _, c := range p.Items {
			seen = append(seen, c.ID)
		}
		if !p.HasNextPage {
			break
		}
		args.After = lo.ToPtr(p.Offset + len(p.Items) - 1)
	}

	require.Len(t, seen, 7)
	assert.Equal(t, seen, lo.Uniq(seen))
	assert.IsIncreasing(t, seen)

	last, err := svc.ListCustomers(ctx, customer.Filter{}, nil, page.Args{Last: lo.ToPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, seen[5:], lo.Map(last.Items, func(c customer.Customer, _ int) int64 { return c.ID }))
	assert.True(t, last.HasPreviousPage)
	assert.Equal(t, 5, last.Offset)
}

func TestListValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.ListCustomers(ctx, customer.Filter{}, []string{"password"}, page.Args{})
	domainErr, ok := crmerr.As(err)
	require.True(t, ok)
	assert.Equal(t, "orderBy", domainErr.Field)

	_, err = svc.ListProducts(ctx, product.Filter{}, nil, page.Args{First: lo.ToPtr(101)})
	domainErr, ok = crmerr.As(err)
	require.True(t, ok)
	assert.Equal(t, "first", domainErr.Field)

	_, err = svc.ListOrders(ctx, order.Filter{}, []string{"-nope"}, page.Args{First: lo.ToPtr(0)})
	domainErr, ok = crmerr.As(err)
	require.True(t, ok)
	assert.Equal(t, crmerr.CodeInvalidArgument, domainErr.Code)
}

func TestEventsAreWrittenToOutbox(t *testing.T) {
	ctx := context.Background()
	client := databasetest.NewSQLite(t)
	svc := crmsvc.MustNewCRMService(
		crmsvc.WithDatabaseClient(client),
		crmsvc.WithEvents(true, "crm.test"),
	)

	c := mustCustomer(t, svc, "Frank", "frank@example.com", "")
	p := mustProduct(t, svc, "Lamp", "40.00", 2)
	_, err := svc.CreateOrder(ctx, order.CreateInput{CustomerID: c.ID, ProductIDs: []int64{p.ID}})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, customer.CreateInput{Name: "Frank", Email: "frank@example.com"})
	require.Error(t, err)

	messages, err := uow.NewUnitOfWork(client).OutboxRepository().GetPendingMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{
		crmsvc.RoutingKeyCustomerCreated,
		crmsvc.RoutingKeyProductCreated,
		crmsvc.RoutingKeyOrderCreated,
	}, lo.Map(messages, func(m outbox.OutboxMessage, _ int) string { return m.RoutingKey }))
	for _, m := range messages {
		assert.Equal(t, "crm.test", m.Exchange)
		assert.NotEmpty(t, m.MessageID)
		assert.True(t, json.Valid(m.Payload))
	}
}

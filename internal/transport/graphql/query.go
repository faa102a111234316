package graphql

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/page"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// HelloMessage is the value of the hello field.
const HelloMessage = "Hello, GraphQL!"

// Service is the CRM functionality exposed through the schema.
type Service interface {
	ListCustomers(ctx context.Context, f customer.Filter, orderBy []string, args page.Args) (page.Page[customer.Customer], error)
	ListProducts(ctx context.Context, f product.Filter, orderBy []string, args page.Args) (page.Page[product.Product], error)
	ListOrders(ctx context.Context, f order.Filter, orderBy []string, args page.Args) (page.Page[order.Order], error)

	CreateCustomer(ctx context.Context, in customer.CreateInput) (customer.Customer, error)
	BulkCreateCustomers(ctx context.Context, inputs []customer.CreateInput) customer.BulkResult
	CreateProduct(ctx context.Context, in product.CreateInput) (product.Product, error)
	CreateOrder(ctx context.Context, in order.CreateInput) (order.Order, error)
}

// helloFields is the field set of the base query.
func helloFields() graphql.Fields {
	return graphql.Fields{
		"hello": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return HelloMessage, nil
			},
		},
	}
}

// crmQueryFields is the field set of the CRM listings.
func crmQueryFields(svc Service, t *types) graphql.Fields {
	customerFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"nameIcontains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"emailIcontains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"createdAtGte":   &graphql.InputObjectFieldConfig{Type: t.date},
			"createdAtLte":   &graphql.InputObjectFieldConfig{Type: t.date},
			"phonePattern":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	return graphql.Fields{
		"allCustomers": &graphql.Field{
			Type: t.customerConnection,
			Args: relay.NewConnectionArgs(graphql.FieldConfigArgument{
				"filter":        &graphql.ArgumentConfig{Type: customerFilterInput},
				"orderBy":       orderByArg(),
				"name":          &graphql.ArgumentConfig{Type: graphql.String},
				"email":         &graphql.ArgumentConfig{Type: graphql.String},
				"createdAt_Gte": &graphql.ArgumentConfig{Type: t.date},
				"createdAt_Lte": &graphql.ArgumentConfig{Type: t.date},
				"phonePattern":  &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args, err := pageArgs(p.Args)
				if err != nil {
					return nil, err
				}

				result, err := svc.ListCustomers(p.Context, customerFilter(p.Args), orderByValues(p.Args), args)
				if err != nil {
					return nil, queryError("allCustomers", err)
				}

				return toConnection(result), nil
			},
		},
		"allProducts": &graphql.Field{
			Type: t.productConnection,
			Args: relay.NewConnectionArgs(graphql.FieldConfigArgument{
				"orderBy":   orderByArg(),
				"name":      &graphql.ArgumentConfig{Type: graphql.String},
				"price_Gte": &graphql.ArgumentConfig{Type: t.decimal},
				"price_Lte": &graphql.ArgumentConfig{Type: t.decimal},
				"stock_Gte": &graphql.ArgumentConfig{Type: graphql.Int},
				"stock_Lte": &graphql.ArgumentConfig{Type: graphql.Int},
				"lowStock":  &graphql.ArgumentConfig{Type: graphql.Boolean},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args, err := pageArgs(p.Args)
				if err != nil {
					return nil, err
				}

				result, err := svc.ListProducts(p.Context, productFilter(p.Args), orderByValues(p.Args), args)
				if err != nil {
					return nil, queryError("allProducts", err)
				}

				return toConnection(result), nil
			},
		},
		"allOrders": &graphql.Field{
			Type: t.orderConnection,
			Args: relay.NewConnectionArgs(graphql.FieldConfigArgument{
				"orderBy":         orderByArg(),
				"totalAmount_Gte": &graphql.ArgumentConfig{Type: t.decimal},
				"totalAmount_Lte": &graphql.ArgumentConfig{Type: t.decimal},
				"orderDate_Gte":   &graphql.ArgumentConfig{Type: t.date},
				"orderDate_Lte":   &graphql.ArgumentConfig{Type: t.date},
				"customerName":    &graphql.ArgumentConfig{Type: graphql.String},
				"productName":     &graphql.ArgumentConfig{Type: graphql.String},
				"productId":       &graphql.ArgumentConfig{Type: graphql.ID},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args, err := pageArgs(p.Args)
				if err != nil {
					return nil, err
				}

				f, err := orderFilter(p.Args)
				if err != nil {
					return nil, err
				}

				result, err := svc.ListOrders(p.Context, f, orderByValues(p.Args), args)
				if err != nil {
					return nil, queryError("allOrders", err)
				}

				return toConnection(result), nil
			},
		},
	}
}

func orderByArg() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)}
}

func orderByValues(args map[string]interface{}) []string {
	raw, ok := args["orderBy"].([]interface{})
	if !ok {
		return nil
	}

	return lo.FilterMap(raw, func(v interface{}, _ int) (string, bool) {
		s, ok := v.(string)
		return s, ok && s != ""
	})
}

// pageArgs decodes the relay pagination arguments.
func pageArgs(args map[string]interface{}) (page.Args, error) {
	var result page.Args

	if v, ok := args["first"].(int); ok {
		result.First = &v
	}
	if v, ok := args["last"].(int); ok {
		result.Last = &v
	}

	for _, name := range []string{"after", "before"} {
		cursor, ok := args[name].(string)
		if !ok {
			continue
		}

		offset, err := relay.CursorToOffset(relay.ConnectionCursor(cursor))
		if err != nil || offset < 0 {
			return page.Args{}, &fieldError{err: crmerr.Invalid(name, fmt.Sprintf("Invalid cursor %q", cursor))}
		}

		if name == "after" {
			result.After = &offset
		} else {
			result.Before = &offset
		}
	}

	return result, nil
}

func stringArg(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

// filterArg is stringArg for filter arguments: a blank value is no restriction.
func filterArg(args map[string]interface{}, name string) *string {
	if v := stringArg(args, name); v != nil && *v != "" {
		return v
	}
	return nil
}

func intArg(args map[string]interface{}, name string) *int {
	if v, ok := args[name].(int); ok {
		return &v
	}
	return nil
}

func decimalArg(args map[string]interface{}, name string) *decimal.Decimal {
	if v, ok := args[name].(decimal.Decimal); ok {
		return &v
	}
	return nil
}

// dateArg returns the start of the given day.
func dateArg(args map[string]interface{}, name string) *time.Time {
	if v, ok := args[name].(time.Time); ok {
		return &v
	}
	return nil
}

// endOfDay returns the last representable instant of the day starting at t.
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	end := t.AddDate(0, 0, 1).Add(-time.Microsecond)

	return &end
}

func customerFilter(args map[string]interface{}) customer.Filter {
	f := customer.Filter{
		NameContains:  filterArg(args, "name"),
		EmailContains: filterArg(args, "email"),
		CreatedAtGte:  dateArg(args, "createdAt_Gte"),
		CreatedAtLte:  endOfDay(dateArg(args, "createdAt_Lte")),
		PhonePrefix:   filterArg(args, "phonePattern"),
	}

	input, ok := args["filter"].(map[string]interface{})
	if !ok {
		return f
	}

	if v := filterArg(input, "nameIcontains"); v != nil {
		f.NameContains = v
	}
	if v := filterArg(input, "emailIcontains"); v != nil {
		f.EmailContains = v
	}
	if v := dateArg(input, "createdAtGte"); v != nil {
		f.CreatedAtGte = v
	}
	if v := dateArg(input, "createdAtLte"); v != nil {
		f.CreatedAtLte = endOfDay(v)
	}
	if v := filterArg(input, "phonePattern"); v != nil {
		f.PhonePrefix = v
	}

	return f
}

func productFilter(args map[string]interface{}) product.Filter {
	f := product.Filter{
		NameContains: filterArg(args, "name"),
		PriceGte:     decimalArg(args, "price_Gte"),
		PriceLte:     decimalArg(args, "price_Lte"),
		StockGte:     intArg(args, "stock_Gte"),
		StockLte:     intArg(args, "stock_Lte"),
	}

	if v, ok := args["lowStock"].(bool); ok {
		f.LowStock = &v
	}

	return f
}

func orderFilter(args map[string]interface{}) (order.Filter, error) {
	f := order.Filter{
		TotalAmountGte:       decimalArg(args, "totalAmount_Gte"),
		TotalAmountLte:       decimalArg(args, "totalAmount_Lte"),
		OrderDateGte:         dateArg(args, "orderDate_Gte"),
		OrderDateLte:         endOfDay(dateArg(args, "orderDate_Lte")),
		CustomerNameContains: filterArg(args, "customerName"),
		ProductNameContains:  filterArg(args, "productName"),
	}

	if raw := filterArg(args, "productId"); raw != nil {
		id, ok := parseID(*raw, productTypeName)
		if !ok {
			return order.Filter{}, &fieldError{err: crmerr.Invalid("productId", fmt.Sprintf("Invalid product ID %q", *raw))}
		}
		f.ProductID = &id
	}

	return f, nil
}

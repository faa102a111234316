package graphql

import (
	"strconv"
	"strings"
	"time"

	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
	"github.com/samber/lo"
)

// Success messages of the create mutations.
const (
	CustomerCreatedMessage = "Customer created successfully"
	ProductCreatedMessage  = "Product created successfully"
	OrderCreatedMessage    = "Order created successfully"
)

// payload is the resolved value of a single create mutation.
type payload struct {
	Entity  interface{}
	Success bool
	Message string
}

func payloadType(name, entityField string, entityType graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			entityField: &graphql.Field{
				Type: entityType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(payload).Entity, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(payload).Success, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(payload).Message, nil
				},
			},
		},
	})
}

// crmMutationFields is the field set of the CRM create mutations.
func crmMutationFields(svc Service, t *types) graphql.Fields {
	customerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.decimal)},
			"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
		},
	})

	orderInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
			"orderDate":  &graphql.InputObjectFieldConfig{Type: t.dateTime},
		},
	})

	bulkPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomers",
		Fields: graphql.Fields{
			"customers": &graphql.Field{
				Type: graphql.NewList(t.customer),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customer.BulkResult).Customers, nil
				},
			},
			"errors": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customer.BulkResult).Errors, nil
				},
			},
		},
	})

	return graphql.Fields{
		"createCustomer": &graphql.Field{
			Type: payloadType("CreateCustomer", "customer", t.customer),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				in := customerInputFrom(p.Args["input"])

				created, err := svc.CreateCustomer(p.Context, in)
				if err != nil {
					return payload{Message: mutationMessage("createCustomer", err)}, nil
				}

				return payload{Entity: created, Success: true, Message: CustomerCreatedMessage}, nil
			},
		},
		"bulkCreateCustomers": &graphql.Field{
			Type: bulkPayload,
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(customerInput))},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				raw, _ := p.Args["input"].([]interface{})
				inputs := lo.FilterMap(raw, func(v interface{}, _ int) (customer.CreateInput, bool) {
					return customerInputFrom(v), v != nil
				})

				return svc.BulkCreateCustomers(p.Context, inputs), nil
			},
		},
		"createProduct": &graphql.Field{
			Type: payloadType("CreateProduct", "product", t.product),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input, _ := p.Args["input"].(map[string]interface{})
				in := product.CreateInput{Name: lo.FromPtr(stringArg(input, "name"))}
				if price := decimalArg(input, "price"); price != nil {
					in.Price = *price
				}
				if stock := intArg(input, "stock"); stock != nil {
					in.Stock = *stock
				}

				created, err := svc.CreateProduct(p.Context, in)
				if err != nil {
					return payload{Message: mutationMessage("createProduct", err)}, nil
				}

				return payload{Entity: created, Success: true, Message: ProductCreatedMessage}, nil
			},
		},
		"createOrder": &graphql.Field{
			Type: payloadType("CreateOrder", "order", t.order),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input, _ := p.Args["input"].(map[string]interface{})
				in := orderInputFrom(input)

				created, err := svc.CreateOrder(p.Context, in)
				if err != nil {
					return payload{Message: mutationMessage("createOrder", err)}, nil
				}

				return payload{Entity: created, Success: true, Message: OrderCreatedMessage}, nil
			},
		},
	}
}

func customerInputFrom(v interface{}) customer.CreateInput {
	input, _ := v.(map[string]interface{})

	return customer.CreateInput{
		Name:  lo.FromPtr(stringArg(input, "name")),
		Email: lo.FromPtr(stringArg(input, "email")),
		Phone: lo.FromPtr(stringArg(input, "phone")),
	}
}

// orderInputFrom decodes an OrderInput. Ids that cannot be parsed become 0,
// which never matches a stored row.
func orderInputFrom(input map[string]interface{}) order.CreateInput {
	customerID, _ := parseID(lo.FromPtr(stringArg(input, "customerId")), customerTypeName)

	raw, _ := input["productIds"].([]interface{})
	productIDs := make([]int64, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		id, _ := parseID(s, productTypeName)
		productIDs = append(productIDs, id)
	}

	in := order.CreateInput{
		CustomerID: customerID,
		ProductIDs: productIDs,
	}
	if v, ok := input["orderDate"].(time.Time); ok {
		in.OrderDate = &v
	}

	return in
}

// parseID accepts a decimal id or a global ID of typeName.
func parseID(raw, typeName string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return 0, false
		}
		return id, true
	}

	global := relay.FromGlobalID(raw)
	if global == nil || global.Type != typeName {
		return 0, false
	}

	id, err := strconv.ParseInt(global.ID, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

package graphql

import (
	"strconv"

	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/order"
	"github.com/corray333/backend-labs/crm/internal/service/models/page"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
)

// Global ID type names.
const (
	customerTypeName = "CustomerType"
	productTypeName  = "ProductType"
	orderTypeName    = "OrderType"
)

// types holds the GraphQL types of one schema.
type types struct {
	decimal  *graphql.Scalar
	date     *graphql.Scalar
	dateTime *graphql.Scalar

	node     *graphql.Interface
	customer *graphql.Object
	product  *graphql.Object
	order    *graphql.Object

	customerConnection *graphql.Object
	productConnection  *graphql.Object
	orderConnection    *graphql.Object
}

func newTypes() *types {
	t := &types{
		decimal:  newDecimalScalar(),
		date:     newDateScalar(),
		dateTime: newDateTimeScalar(),
	}

	t.node = graphql.NewInterface(graphql.InterfaceConfig{
		Name:        "Node",
		Description: "An object with an ID",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.ID),
				Description: "The ID of the object",
			},
		},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case customer.Customer:
				return t.customer
			case product.Product:
				return t.product
			case order.Order:
				return t.order
			}
			return nil
		},
	})

	t.customer = graphql.NewObject(graphql.ObjectConfig{
		Name:       customerTypeName,
		Interfaces: []*graphql.Interface{t.node},
		Fields: graphql.Fields{
			"id": globalIDField(customerTypeName, func(source interface{}) int64 {
				return source.(customer.Customer).ID
			}),
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customer.Customer).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customer.Customer).Email, nil
				},
			},
			"phone": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if phone := p.Source.(customer.Customer).Phone; phone != "" {
						return phone, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(t.dateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(customer.Customer).CreatedAt, nil
				},
			},
		},
	})

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name:       productTypeName,
		Interfaces: []*graphql.Interface{t.node},
		Fields: graphql.Fields{
			"id": globalIDField(productTypeName, func(source interface{}) int64 {
				return source.(product.Product).ID
			}),
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(product.Product).Name, nil
				},
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(t.decimal),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(product.Product).Price, nil
				},
			},
			"stock": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(product.Product).Stock, nil
				},
			},
		},
	})

	t.order = graphql.NewObject(graphql.ObjectConfig{
		Name:       orderTypeName,
		Interfaces: []*graphql.Interface{t.node},
		Fields: graphql.Fields{
			"id": globalIDField(orderTypeName, func(source interface{}) int64 {
				return source.(order.Order).ID
			}),
			"customer": &graphql.Field{
				Type: graphql.NewNonNull(t.customer),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c := p.Source.(order.Order).Customer; c != nil {
						return *c, nil
					}
					return nil, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.product))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(order.Order).Products, nil
				},
			},
			"orderDate": &graphql.Field{
				Type: graphql.NewNonNull(t.dateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(order.Order).OrderDate, nil
				},
			},
			"totalAmount": &graphql.Field{
				Type: graphql.NewNonNull(t.decimal),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(order.Order).TotalAmount, nil
				},
			},
		},
	})

	t.customerConnection = newConnection(customerTypeName, t.customer)
	t.productConnection = newConnection(productTypeName, t.product)
	t.orderConnection = newConnection(orderTypeName, t.order)

	return t
}

func globalIDField(typeName string, id func(source interface{}) int64) *graphql.Field {
	return &graphql.Field{
		Type:        graphql.NewNonNull(graphql.ID),
		Description: "The ID of the object",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return relay.ToGlobalID(typeName, strconv.FormatInt(id(p.Source), 10)), nil
		},
	}
}

func newConnection(name string, nodeType *graphql.Object) *graphql.Object {
	return relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     name,
		NodeType: nodeType,
		ConnectionFields: graphql.Fields{
			"totalCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	}).ConnectionType
}

// connection is the resolved value of a relay connection field.
type connection struct {
	Edges      []*relay.Edge `json:"edges"`
	PageInfo   pageInfo      `json:"pageInfo"`
	TotalCount int           `json:"totalCount"`
}

type pageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
}

// toConnection turns a page into a connection with offset cursors.
func toConnection[T any](p page.Page[T]) connection {
	conn := connection{
		Edges:      make([]*relay.Edge, 0, len(p.Items)),
		TotalCount: p.Total,
		PageInfo: pageInfo{
			HasPreviousPage: p.HasPreviousPage,
			HasNextPage:     p.HasNextPage,
		},
	}

	for i, item := range p.Items {
		conn.Edges = append(conn.Edges, &relay.Edge{
			Node:   item,
			Cursor: relay.OffsetToCursor(p.Offset + i),
		})
	}

	if len(conn.Edges) > 0 {
		start := string(conn.Edges[0].Cursor)
		end := string(conn.Edges[len(conn.Edges)-1].Cursor)
		conn.PageInfo.StartCursor = &start
		conn.PageInfo.EndCursor = &end
	}

	return conn
}

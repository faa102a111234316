// Package graphql builds the CRM GraphQL schema and its HTTP handler.
package graphql

import (
	"fmt"
	"maps"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewSchema composes the root query from the hello field and the CRM listings,
// and the root mutation from the CRM create mutations.
func NewSchema(svc Service) (graphql.Schema, error) {
	t := newTypes()

	queryFields := helloFields()
	maps.Copy(queryFields, crmQueryFields(svc, t))

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: crmMutationFields(svc, t),
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return schema, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema(svc Service) graphql.Schema {
	schema, err := NewSchema(svc)
	if err != nil {
		panic(err)
	}

	return schema
}

// NewHandler serves schema over HTTP, optionally with the GraphiQL explorer.
func NewHandler(schema graphql.Schema, graphiql bool) *handler.Handler {
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: graphiql,
	})
}

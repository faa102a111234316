// Package crmapi is a GraphQL client for the CRM endpoint, used by the maintenance jobs.
package crmapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
)

// PageSize is the number of orders requested per page.
const PageSize = 100

// Order is an order as reported to the reminder job.
type Order struct {
	ID            string
	OrderDate     string
	CustomerEmail string
}

// Client queries the CRM GraphQL endpoint.
type Client struct {
	gql *graphql.Client
}

// NewClient creates a client for endpoint. Every request is bounded by timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(&http.Client{Timeout: timeout}))
	gql.Log = func(s string) { slog.Debug(s, "component", "crmapi") }

	return &Client{gql: gql}
}

const helloQuery = `query { hello }`

// Hello runs the liveness query and returns the hello field.
func (c *Client) Hello(ctx context.Context) (string, error) {
	var resp struct {
		Hello string `json:"hello"`
	}

	if err := c.gql.Run(ctx, graphql.NewRequest(helloQuery), &resp); err != nil {
		return "", fmt.Errorf("failed to query hello: %w", err)
	}

	return resp.Hello, nil
}

const recentOrdersQuery = `
query RecentOrders($since: Date!, $first: Int, $after: String) {
  allOrders(orderDate_Gte: $since, first: $first, after: $after) {
    edges {
      node {
        id
        orderDate
        customer { email }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

type recentOrdersResponse struct {
	AllOrders struct {
		Edges []struct {
			Node struct {
				ID        string `json:"id"`
				OrderDate string `json:"orderDate"`
				Customer  *struct {
					Email string `json:"email"`
				} `json:"customer"`
			} `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasNextPage bool    `json:"hasNextPage"`
			EndCursor   *string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"allOrders"`
}

// OrdersSince returns every order dated on or after the given day, following
// pagination until the last page.
func (c *Client) OrdersSince(ctx context.Context, since time.Time) ([]Order, error) {
	var (
		orders []Order
		after  *string
	)

	for {
		req := graphql.NewRequest(recentOrdersQuery)
		req.Var("since", since.Format("2006-01-02"))
		req.Var("first", PageSize)
		if after != nil {
			req.Var("after", *after)
		}

		var resp recentOrdersResponse
		if err := c.gql.Run(ctx, req, &resp); err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}

		for _, edge := range resp.AllOrders.Edges {
			email := "N/A"
			if edge.Node.Customer != nil {
				email = edge.Node.Customer.Email
			}

			orders = append(orders, Order{
				ID:            edge.Node.ID,
				OrderDate:     edge.Node.OrderDate,
				CustomerEmail: email,
			})
		}

		info := resp.AllOrders.PageInfo
		if !info.HasNextPage || info.EndCursor == nil {
			return orders, nil
		}
		after = info.EndCursor
	}
}

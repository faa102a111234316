package crmapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func newServer(t *testing.T, handle func(req gqlRequest) interface{}) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(handle(req)))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestHello(t *testing.T) {
	server := newServer(t, func(req gqlRequest) interface{} {
		assert.Contains(t, req.Query, "hello")

		return map[string]interface{}{"data": map[string]interface{}{"hello": "Hello, GraphQL!"}}
	})

	hello, err := NewClient(server.URL, time.Second).Hello(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello, GraphQL!", hello)
}

func TestHelloGraphQLError(t *testing.T) {
	server := newServer(t, func(gqlRequest) interface{} {
		return map[string]interface{}{"errors": []map[string]interface{}{{"message": "boom"}}}
	})

	_, err := NewClient(server.URL, time.Second).Hello(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestHelloUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).Hello(context.Background())
	assert.Error(t, err)
}

func TestOrdersSincePaginates(t *testing.T) {
	calls := 0
	server := newServer(t, func(req gqlRequest) interface{} {
		calls++
		assert.Equal(t, "2024-06-01", req.Variables["since"])
		assert.EqualValues(t, PageSize, req.Variables["first"])

		node := func(id, email string) map[string]interface{} {
			return map[string]interface{}{"node": map[string]interface{}{
				"id":        id,
				"orderDate": "2024-06-02T10:00:00Z",
				"customer":  map[string]interface{}{"email": email},
			}}
		}

		if calls == 1 {
			assert.Nil(t, req.Variables["after"])

			return map[string]interface{}{"data": map[string]interface{}{"allOrders": map[string]interface{}{
				"edges":    []interface{}{node("T3JkZXJUeXBlOjE=", "a@example.com")},
				"pageInfo": map[string]interface{}{"hasNextPage": true, "endCursor": "YXJyYXljb25uZWN0aW9uOjA="},
			}}}
		}

		assert.Equal(t, "YXJyYXljb25uZWN0aW9uOjA=", req.Variables["after"])

		return map[string]interface{}{"data": map[string]interface{}{"allOrders": map[string]interface{}{
			"edges":    []interface{}{node("T3JkZXJUeXBlOjI=", "b@example.com")},
			"pageInfo": map[string]interface{}{"hasNextPage": false, "endCursor": "YXJyYXljb25uZWN0aW9uOjE="},
		}}}
	})

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	orders, err := NewClient(server.URL, time.Second).OrdersSince(context.Background(), since)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []Order{
		{ID: "T3JkZXJUeXBlOjE=", OrderDate: "2024-06-02T10:00:00Z", CustomerEmail: "a@example.com"},
		{ID: "T3JkZXJUeXBlOjI=", OrderDate: "2024-06-02T10:00:00Z", CustomerEmail: "b@example.com"},
	}, orders)
}

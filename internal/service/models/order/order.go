package order

import (
	"time"

	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/corray333/backend-labs/crm/internal/service/models/product"
	"github.com/shopspring/decimal"
)

// Order represents a customer's order of one or more products.
// TotalAmount is the sum of product prices at creation time and is never recomputed.
type Order struct {
	ID          int64              `json:"id"`
	CustomerID  int64              `json:"customerId"`
	ProductIDs  []int64            `json:"productIds"`
	OrderDate   time.Time          `json:"orderDate"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Customer    *customer.Customer `json:"customer,omitempty"`
	Products    []product.Product  `json:"products,omitempty"`
}

// CreateInput holds the fields accepted when creating an order.
// A nil OrderDate means the creation time.
type CreateInput struct {
	CustomerID int64      `json:"customerId"`
	ProductIDs []int64    `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate,omitempty"`
}

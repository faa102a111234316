package customer

import (
	"time"
)

// Customer represents a CRM customer.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateInput holds the fields accepted when creating a customer.
type CreateInput struct {
	Name  string `json:"name"            validate:"required"`
	Email string `json:"email"           validate:"required"`
	Phone string `json:"phone,omitempty"`
}

// BulkResult is the outcome of a bulk create call.
// Errors holds one message per rejected input.
type BulkResult struct {
	Customers []Customer `json:"customers"`
	Errors    []string   `json:"errors"`
}

package crmsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"go.opentelemetry.io/otel/attribute"
)

// CreateCustomer validates and stores a single customer.
// Validation failures are returned as *crmerr.Error.
func (s *CRMService) CreateCustomer(ctx context.Context, in customer.CreateInput) (customer.Customer, error) {
	ctx, span := tracer.Start(ctx, "CRMService.CreateCustomer")
	defer span.End()

	if err := checkCustomerInput(in); err != nil {
		return customer.Customer{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return customer.Customer{}, err
	}
	defer func() { _ = work.Rollback() }()

	created, err := s.insertCustomer(ctx, work, in)
	if err != nil {
		return customer.Customer{}, err
	}

	if err := work.Commit(); err != nil {
		return customer.Customer{}, err
	}

	span.SetAttributes(attribute.Int64("customer.id", created.ID))

	return created, nil
}

// insertCustomer runs the duplicate email and phone checks, then inserts the row.
func (s *CRMService) insertCustomer(ctx context.Context, work unitOfWork, in customer.CreateInput) (customer.Customer, error) {
	exists, err := work.CustomerRepository().ExistsByEmail(ctx, in.Email)
	if err != nil {
		return customer.Customer{}, err
	}
	if exists {
		return customer.Customer{}, crmerr.ErrDuplicateEmail
	}

	if !ValidPhone(in.Phone) {
		return customer.Customer{}, crmerr.ErrInvalidPhoneFormat
	}

	created, err := work.CustomerRepository().Insert(ctx, customer.Customer{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customer.Customer{}, crmerr.ErrDuplicateEmail
		}

		return customer.Customer{}, err
	}

	if err := s.recordEvent(ctx, work, RoutingKeyCustomerCreated, created); err != nil {
		return customer.Customer{}, err
	}

	return created, nil
}

// BulkCreateCustomers creates each input independently.
// Every accepted item commits in its own transaction, so a failure on one item
// never undoes the items created before it. Rejected items are reported in
// BulkResult.Errors in input order.
func (s *CRMService) BulkCreateCustomers(ctx context.Context, inputs []customer.CreateInput) customer.BulkResult {
	ctx, span := tracer.Start(ctx, "CRMService.BulkCreateCustomers")
	defer span.End()

	result := customer.BulkResult{
		Customers: make([]customer.Customer, 0, len(inputs)),
		Errors:    make([]string, 0),
	}

	for _, in := range inputs {
		created, err := s.createBulkItem(ctx, in)
		if err == nil {
			result.Customers = append(result.Customers, created)

			continue
		}

		result.Errors = append(result.Errors, bulkItemMessage(in, err))
	}

	span.SetAttributes(
		attribute.Int("bulk.created", len(result.Customers)),
		attribute.Int("bulk.rejected", len(result.Errors)),
	)

	return result
}

func (s *CRMService) createBulkItem(ctx context.Context, in customer.CreateInput) (customer.Customer, error) {
	if err := checkCustomerInput(in); err != nil {
		return customer.Customer{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return customer.Customer{}, err
	}
	defer func() { _ = work.Rollback() }()

	created, err := s.insertCustomer(ctx, work, in)
	if err != nil {
		return customer.Customer{}, err
	}

	if err := work.Commit(); err != nil {
		return customer.Customer{}, err
	}

	return created, nil
}

func bulkItemMessage(in customer.CreateInput, err error) string {
	switch {
	case errors.Is(err, crmerr.ErrDuplicateEmail):
		return fmt.Sprintf("Email %s already exists", in.Email)
	case errors.Is(err, crmerr.ErrInvalidPhoneFormat):
		return fmt.Sprintf("Invalid phone format for %s", in.Email)
	}

	if domainErr, ok := crmerr.As(err); ok {
		return domainErr.Message
	}

	slog.Error("Failed to create customer", "email", in.Email, "error", err)

	return fmt.Sprintf("Failed to create customer %s", in.Email)
}

package crmsvc

import (
	"context"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/crm/internal/dal/uow"
	"go.opentelemetry.io/otel"
)

const (
	// DefaultMaxPageSize is the page size cap used when none is configured.
	DefaultMaxPageSize = 100
	// DefaultExchange is the exchange domain events are routed to.
	DefaultExchange = "crm.events"
)

var tracer = otel.Tracer("crm-svc")

// CRMService is a service for managing customers, products and orders.
type CRMService struct {
	dbClient      *database.Client
	maxPageSize   int
	eventsEnabled bool
	exchange      string
}

func (s *CRMService) newUOW() unitOfWork {
	return uow.NewUnitOfWork(s.dbClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() icustomerrepo.ICustomerRepository
	ProductRepository() iproductrepo.IProductRepository
	OrderRepository() iorderrepo.IOrderRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the CRMService.
type option func(*CRMService)

// MustNewCRMService creates a new CRMService.
func MustNewCRMService(opts ...option) *CRMService {
	s := &CRMService{
		maxPageSize: DefaultMaxPageSize,
		exchange:    DefaultExchange,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.dbClient == nil {
		panic("crmsvc: database client is required")
	}

	return s
}

// WithDatabaseClient sets the database client for the CRMService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDatabaseClient(client *database.Client) option {
	return func(s *CRMService) {
		s.dbClient = client
	}
}

// WithMaxPageSize caps the number of items a single listing page may return.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMaxPageSize(size int) option {
	return func(s *CRMService) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}

// WithEvents enables writing domain events to the outbox, routed to exchange.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEvents(enabled bool, exchange string) option {
	return func(s *CRMService) {
		s.eventsEnabled = enabled
		if exchange != "" {
			s.exchange = exchange
		}
	}
}

// MaxPageSize returns the configured page size cap.
func (s *CRMService) MaxPageSize() int {
	return s.maxPageSize
}

// Ping checks that the store is reachable.
func (s *CRMService) Ping(ctx context.Context) error {
	return s.dbClient.Ping(ctx)
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/corray333/backend-labs/crm/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/crm/internal/dal/uow"
	"github.com/corray333/backend-labs/crm/internal/otel"
	"github.com/corray333/backend-labs/crm/internal/service/services/crmsvc"
	crmgraphql "github.com/corray333/backend-labs/crm/internal/transport/graphql"
	grpctransport "github.com/corray333/backend-labs/crm/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/crm/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/crm/internal/worker/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App represents the API server process.
type App struct {
	otel          *otel.Controller
	dbClient      *database.Client
	rabbitClient  *rabbitmq.Client
	crmSvc        *crmsvc.CRMService
	httpTransport *httptransport.HTTPTransport
	grpcTransport *grpctransport.GRPCTransport
	outboxWorker  *outboxworker.Worker
}

// MustNewApp wires the store, service, transports and, when events are
// enabled, the RabbitMQ outbox worker.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("crm-svc")
	dbClient := database.MustNewClient()

	eventsEnabled := viper.GetBool("events.enabled")
	exchange := viper.GetString("rabbitmq.exchange")

	crmSvc := crmsvc.MustNewCRMService(
		crmsvc.WithDatabaseClient(dbClient),
		crmsvc.WithMaxPageSize(viper.GetInt("graphql.max_page_size")),
		crmsvc.WithEvents(eventsEnabled, exchange),
	)

	schema := crmgraphql.MustNewSchema(crmSvc)
	httpTransport := httptransport.NewHTTPTransport(
		crmgraphql.NewHandler(schema, viper.GetBool("graphql.graphiql")),
		crmSvc,
	)
	httpTransport.RegisterRoutes()

	grpcTransport, err := grpctransport.NewGRPCTransport()
	if err != nil {
		panic(err)
	}

	a := &App{
		otel:          otelController,
		dbClient:      dbClient,
		crmSvc:        crmSvc,
		httpTransport: httpTransport,
		grpcTransport: grpcTransport,
	}

	if eventsEnabled {
		a.rabbitClient = rabbitmq.MustNewClient()
		if err := a.rabbitClient.DeclareExchange(rabbitmq.DeclareExchangeConfig{
			Name:    exchange,
			Durable: true,
		}); err != nil {
			panic(err)
		}

		a.outboxWorker = outboxworker.NewWorker(
			uow.NewUnitOfWork(dbClient).OutboxRepository(),
			a.rabbitClient,
		)
	}

	return a
}

// Run serves until an interrupt or a server failure, then shuts everything down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.httpTransport.Run)
	g.Go(a.grpcTransport.Run)

	if a.outboxWorker != nil {
		g.Go(func() error {
			a.outboxWorker.Start(gctx)

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")

		return a.shutdown()
	})

	err := g.Wait()
	a.close()

	slog.Info("Application shutdown complete")

	return err
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if err := a.httpTransport.Shutdown(ctx); err != nil {
		errs = append(errs, err)
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(ctx); err != nil {
		errs = append(errs, err)
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	return errors.Join(errs...)
}

func (a *App) close() {
	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}

	if err := a.dbClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.otel.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}
}

package otel

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/crm/internal/jaeger"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Controller owns the process tracer provider.
type Controller struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitOtel installs the global tracer provider and propagator.
// Spans are exported to Jaeger only when otel.enabled is set.
func MustInitOtel(serviceName string) *Controller {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	}

	if viper.GetBool("otel.enabled") {
		exporter, err := jaeger.NewExporter(viper.GetString("otel.jaeger_endpoint"))
		if err != nil {
			panic(err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		slog.Info("Tracing enabled", "service", serviceName)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Controller{
		traceProvider: tp,
	}
}

// Shutdown flushes pending spans and stops the provider.
func (c *Controller) Shutdown(ctx context.Context) error {
	return c.traceProvider.Shutdown(ctx)
}

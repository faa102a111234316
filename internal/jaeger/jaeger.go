package jaeger

import (
	"fmt"

	"go.opentelemetry.io/otel/exporters/jaeger"
)

// DefaultEndpoint is the collector endpoint used when none is configured.
const DefaultEndpoint = "http://localhost:14268/api/traces"

// NewExporter creates a Jaeger exporter sending spans to the collector at endpoint.
func NewExporter(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create jaeger exporter: %w", err)
	}

	return exp, nil
}

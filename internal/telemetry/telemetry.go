// internal/telemetry/telemetry.go

// Package telemetry installs the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Shutdown flushes and stops what Setup installed.
type Shutdown func(context.Context) error

// Setup exports spans over OTLP/HTTP to endpoint. With an empty endpoint the
// global no-op provider stays in place and Shutdown does nothing.
func Setup(ctx context.Context, serviceName, endpoint string, logger *zap.Logger) (Shutdown, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)
	logger.Info("tracing enabled", zap.String("endpoint", endpoint), zap.String("service", serviceName))

	return provider.Shutdown, nil
}

// Package tracing configures the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Config struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRate  float64
	ServiceName string
	Environment string
}

// Shutdown flushes and stops the provider installed by Setup.
type Shutdown func(context.Context) error

// Setup installs an OTLP/gRPC exporting tracer provider. When tracing is
// disabled it installs nothing and returns a no-op Shutdown.
func Setup(ctx context.Context, cfg Config) (Shutdown, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("otlp endpoint is required when tracing is enabled")
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.SampleRate))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider.Shutdown, nil
}

// sampler maps the configured rate to a root sampler: r <= 0 samples
// nothing, r >= 1 (or NaN) samples everything.
func sampler(r float64) sdktrace.Sampler {
	switch {
	case math.IsNaN(r) || r >= 1:
		return sdktrace.AlwaysSample()
	case r <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(r)
}

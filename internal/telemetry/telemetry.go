// Package telemetry traces catalog loading, world generation and snapshot IO
// through OpenTelemetry. Without a configured collector every span is a no-op.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "tileworld"
	serviceVersion = "0.3.0"
)

// Honeycomb shortcut variables, translated into the standard OTEL_* ones.
const (
	HoneycombKeyVar     = "HONEYCOMB_TILEWORLD_API_KEY"
	HoneycombDatasetVar = "HONEYCOMB_TILEWORLD_DATASET"

	honeycombEndpoint = "https://api.honeycomb.io"
)

const (
	endpointVar       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	tracesEndpointVar = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	headersVar        = "OTEL_EXPORTER_OTLP_HEADERS"
)

// HoneycombEnv returns the OTEL_* variables implied by the Honeycomb
// shortcuts, or nil when no API key is set. An endpoint that is already
// configured is left alone.
func HoneycombEnv(getenv func(string) string) map[string]string {
	key := getenv(HoneycombKeyVar)
	if key == "" {
		return nil
	}
	dataset := getenv(HoneycombDatasetVar)
	if dataset == "" {
		dataset = serviceName
	}

	env := map[string]string{
		headersVar: fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", key, dataset),
	}
	if getenv(endpointVar) == "" {
		env[endpointVar] = honeycombEndpoint
	}
	return env
}

// Enabled reports whether an OTLP destination is configured.
func Enabled() bool {
	return enabled(os.Getenv)
}

func enabled(getenv func(string) string) bool {
	return getenv(endpointVar) != "" || getenv(tracesEndpointVar) != ""
}

// Start applies the Honeycomb shortcuts and, when a collector is configured,
// installs an OTLP/HTTP tracer provider. The returned shutdown flushes
// pending spans and is a no-op when tracing stays off.
func Start(ctx context.Context) (shutdown func(context.Context) error, err error) {
	for k, v := range HoneycombEnv(os.Getenv) {
		if err := os.Setenv(k, v); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	if !Enabled() {
		return func(context.Context) error { return nil }, nil
	}
	return Setup(ctx)
}

// Setup installs the OTLP/HTTP exporter unconditionally. The exporter reads
// OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS itself.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Built from scratch rather than merged with resource.Default(), whose
	// schema URL can conflict with ours.
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes()...))
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func resourceAttributes() []attribute.KeyValue {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", host),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	}
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

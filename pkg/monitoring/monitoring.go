package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type Monitoring interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

type openTelemetry struct {
	serviceName string
	environment string
	tp          *sdktrace.TracerProvider
}

// NewOpenTelemetry builds a tracing provider exporting over OTLP/HTTP. The
// collector endpoint is taken from the standard OTEL_EXPORTER_OTLP_*
// environment variables.
func NewOpenTelemetry(serviceName, environment string) Monitoring {
	return &openTelemetry{
		serviceName: serviceName,
		environment: environment,
	}
}

func (m *openTelemetry) Start(ctx context.Context) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		otel.Handle(err)
		return
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.serviceName),
			attribute.String("environment", m.environment),
		),
	)
	if err != nil {
		otel.Handle(err)
		return
	}

	m.tp = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(m.tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

func (m *openTelemetry) Stop(ctx context.Context) {
	if m.tp == nil {
		return
	}

	if err := m.tp.Shutdown(ctx); err != nil {
		otel.Handle(err)
	}
}

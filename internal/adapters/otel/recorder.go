package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

const (
	serviceName    = "labgenie"
	serviceVersion = "1.0.0"
)

// Recorder counts submissions, generations and exports on an OTel meter.
type Recorder struct {
	provider    *sdkmetric.MeterProvider
	submissions metric.Int64Counter
	generations metric.Int64Counter
	exports     metric.Int64Counter
}

// NewRecorder creates a recorder that pushes to an OTel Collector over gRPC.
func NewRecorder(ctx context.Context, cfg Config) (*Recorder, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return NewRecorderWithProvider(provider)
}

// NewRecorderWithProvider builds the instruments on an existing provider.
func NewRecorderWithProvider(provider *sdkmetric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"labgenie_submissions_total",
		metric.WithDescription("Experiment submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submissions counter: %w", err)
	}

	generations, err := meter.Int64Counter(
		"labgenie_generations_total",
		metric.WithDescription("Generated lab records by source"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generations counter: %w", err)
	}

	exports, err := meter.Int64Counter(
		"labgenie_exports_total",
		metric.WithDescription("Document exports by format and outcome"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating exports counter: %w", err)
	}

	return &Recorder{
		provider:    provider,
		submissions: submissions,
		generations: generations,
		exports:     exports,
	}, nil
}

func (r *Recorder) RecordSubmission(ctx context.Context, outcome string) {
	r.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (r *Recorder) RecordGeneration(ctx context.Context, source domain.RecordSource) {
	r.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(source))))
}

func (r *Recorder) RecordExport(ctx context.Context, format domain.ExportFormat, outcome string) {
	r.exports.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", string(format)),
		attribute.String("outcome", outcome),
	))
}

// Close shuts down the provider and flushes any pending metrics.
func (r *Recorder) Close(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}

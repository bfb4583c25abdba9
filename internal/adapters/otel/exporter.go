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

	"github.com/emiliopalmerini/uhpc/internal/config"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

const (
	serviceName    = "uhpc"
	serviceVersion = "1.0.0"
)

// Exporter exports prediction metrics to an OTEL Collector.
type Exporter struct {
	provider         *sdkmetric.MeterProvider
	predictionsTotal metric.Int64Counter
	extrapolations   metric.Int64Counter
	compressiveHist  metric.Float64Histogram
	costHist         metric.Float64Histogram
}

// NewExporter creates an OTLP gRPC exporter.
func NewExporter(ctx context.Context, cfg config.OTel) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
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

	return newExporter(ctx, sdkmetric.NewPeriodicReader(exp))
}

func newExporter(ctx context.Context, reader sdkmetric.Reader) (*Exporter, error) {
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
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider}
	if e.predictionsTotal, err = meter.Int64Counter(
		"uhpc_predictions_total",
		metric.WithDescription("Total number of predictions"),
		metric.WithUnit("{prediction}"),
	); err != nil {
		return nil, fmt.Errorf("creating predictions counter: %w", err)
	}
	if e.extrapolations, err = meter.Int64Counter(
		"uhpc_extrapolations_total",
		metric.WithDescription("Inputs outside the validated ranges"),
		metric.WithUnit("{input}"),
	); err != nil {
		return nil, fmt.Errorf("creating extrapolations counter: %w", err)
	}
	if e.compressiveHist, err = meter.Float64Histogram(
		"uhpc_predicted_compressive_mpa",
		metric.WithDescription("Predicted compressive strength"),
		metric.WithUnit("MPa"),
	); err != nil {
		return nil, fmt.Errorf("creating compressive histogram: %w", err)
	}
	if e.costHist, err = meter.Float64Histogram(
		"uhpc_predicted_cost_usd",
		metric.WithDescription("Predicted material cost per cubic metre"),
		metric.WithUnit("USD"),
	); err != nil {
		return nil, fmt.Errorf("creating cost histogram: %w", err)
	}
	return e, nil
}

// RecordPrediction records one prediction.
func (e *Exporter) RecordPrediction(ctx context.Context, ev *ports.PredictionEvent) error {
	opt := metric.WithAttributes(
		attribute.String("source", ev.Source),
		attribute.String("operation", ev.Operation),
		attribute.String("engine_version", ev.EngineVersion),
	)

	e.predictionsTotal.Add(ctx, 1, opt)
	if ev.Extrapolations > 0 {
		e.extrapolations.Add(ctx, int64(ev.Extrapolations), opt)
	}
	e.compressiveHist.Record(ctx, ev.CompressiveMPA, opt)
	e.costHist.Record(ctx, ev.CostUSD, opt)
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

// New returns the OTLP exporter when enabled, otherwise a NoOpExporter.
func New(ctx context.Context, cfg config.OTel) (ports.MetricsExporter, error) {
	if !cfg.Enabled {
		return NewNoOpExporter(), nil
	}
	return NewExporter(ctx, cfg)
}

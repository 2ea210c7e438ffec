package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/mplosser/data-fry9/internal/config"
)

const (
	// MeterName identifies this instrumentation scope.
	MeterName = "data-fry9"
	// ServiceVersion is stamped on the telemetry resource.
	ServiceVersion = "1.0.0"
)

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Logger         *slog.Logger
}

// InitializeOTel initializes OpenTelemetry tracing and metrics for a
// conversion run. When telemetry is disabled it returns providers backed by
// the no-op globals so callers never need to nil-check.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	ctx := context.Background()

	providers := &OTelProviders{
		Logger: logger,
		Tracer: otel.Tracer(MeterName),
		Meter:  otel.Meter(MeterName),
	}

	if !cfg.Enabled {
		return providers, nil
	}

	logger.InfoContext(ctx, "initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", ServiceVersion))

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := initializeTracing(ctx, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(ctx, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing with the stdout exporter
func initializeTracing(ctx context.Context, res *resource.Resource, providers *OTelProviders) error {
	exporter, err := stdouttrace.New(
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))

	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "tracing initialized",
		slog.String("exporter", "stdout"))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics with the stdout exporter
func initializeMetrics(ctx context.Context, res *resource.Resource, providers *OTelProviders) error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(30*time.Second))),
	)

	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))

	otel.SetMeterProvider(mp)

	providers.Logger.InfoContext(ctx, "metrics initialized",
		slog.String("exporter", "stdout"))

	return nil
}

// ConversionMetrics holds the instruments recorded during a conversion run
type ConversionMetrics struct {
	FilesProcessed    metric.Int64Counter
	FilesSkipped      metric.Int64Counter
	RecordsRead       metric.Int64Counter
	RecordsExcluded   metric.Int64Counter
	PartitionsWritten metric.Int64Counter
	FileDuration      metric.Float64Histogram
}

// CreateConversionMetrics creates the application-specific metrics
func CreateConversionMetrics(meter metric.Meter) (*ConversionMetrics, error) {
	filesProcessed, err := meter.Int64Counter(
		"conversion_files_processed_total",
		metric.WithDescription("Total number of filing files converted successfully"),
	)
	if err != nil {
		return nil, err
	}

	filesSkipped, err := meter.Int64Counter(
		"conversion_files_skipped_total",
		metric.WithDescription("Total number of filing files skipped"),
	)
	if err != nil {
		return nil, err
	}

	recordsRead, err := meter.Int64Counter(
		"conversion_records_read_total",
		metric.WithDescription("Total number of filing records read"),
	)
	if err != nil {
		return nil, err
	}

	recordsExcluded, err := meter.Int64Counter(
		"conversion_records_excluded_total",
		metric.WithDescription("Total number of filing records excluded"),
	)
	if err != nil {
		return nil, err
	}

	partitionsWritten, err := meter.Int64Counter(
		"conversion_partitions_written_total",
		metric.WithDescription("Total number of partition files written"),
	)
	if err != nil {
		return nil, err
	}

	fileDuration, err := meter.Float64Histogram(
		"conversion_file_duration_seconds",
		metric.WithDescription("Per-file conversion duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ConversionMetrics{
		FilesProcessed:    filesProcessed,
		FilesSkipped:      filesSkipped,
		RecordsRead:       recordsRead,
		RecordsExcluded:   recordsExcluded,
		PartitionsWritten: partitionsWritten,
		FileDuration:      fileDuration,
	}, nil
}

// RecordFileMetrics records the per-file outcome instruments
func RecordFileMetrics(ctx context.Context, metrics *ConversionMetrics, duration time.Duration, success bool, skipReason string) {
	if metrics == nil {
		return
	}

	if success {
		metrics.FilesProcessed.Add(ctx, 1)
	} else {
		metrics.FilesSkipped.Add(ctx, 1,
			metric.WithAttributes(attribute.String("reason", skipReason)))
	}
	metrics.FileDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.Bool("success", success)))
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

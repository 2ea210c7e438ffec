package infrastructure

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/mplosser/data-fry9/internal/config"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{
		Enabled:     false,
		ServiceName: "fry9-converter",
	}, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// Disabled telemetry still yields usable tracer and meter handles.
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)

	// Shutdown of no-op providers is a no-op.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestCreateConversionMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	metrics, err := CreateConversionMetrics(meter)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.NotNil(t, metrics.FilesProcessed)
	assert.NotNil(t, metrics.FilesSkipped)
	assert.NotNil(t, metrics.RecordsRead)
	assert.NotNil(t, metrics.RecordsExcluded)
	assert.NotNil(t, metrics.PartitionsWritten)
	assert.NotNil(t, metrics.FileDuration)
}

func TestRecordFileMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := CreateConversionMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()

	// Recording against no-op instruments must not panic, with or without
	// a populated metrics struct.
	RecordFileMetrics(ctx, metrics, 25*time.Millisecond, true, "")
	RecordFileMetrics(ctx, metrics, 25*time.Millisecond, false, "FORMAT")
	RecordFileMetrics(ctx, nil, 0, false, "ARCHIVE")
}

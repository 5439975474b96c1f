package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// SetupMetrics creates a meter whose readings are exported periodically as
// JSON lines to the file at path. The returned shutdown function flushes the
// final reading and closes the provider. An empty path returns a nil meter
// and a no-op shutdown.
func SetupMetrics(path, version string) (metric.Meter, func(context.Context) error, error) {
	if path == "" {
		return nil, func(context.Context) error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("creating metrics directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // G304: path comes from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening metrics file: %w", err)
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("creating metrics exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("proctor"),
			semconv.ServiceVersion(version),
		)),
	)

	shutdown := func(ctx context.Context) error {
		err := provider.Shutdown(ctx)
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	}
	return provider.Meter("proctor/schedule"), shutdown, nil
}
